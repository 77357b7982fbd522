package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

type localBackend struct{}

func NewLocal() Backend {
	return &localBackend{}
}

func (b *localBackend) Stat(p string) (os.FileInfo, error) {
	return os.Stat(p)
}

func (b *localBackend) MkdirAll(dir string, mode fs.FileMode) error {
	return os.MkdirAll(dir, mode)
}

func (b *localBackend) Remove(p string) error {
	return os.Remove(p)
}

func (b *localBackend) RemoveAll(p string) error {
	return os.RemoveAll(p)
}

func (b *localBackend) Rename(oldname, newname string) error {
	return os.Rename(oldname, newname)
}

func (b *localBackend) ReadFile(p string) ([]byte, error) {
	return os.ReadFile(p)
}

func (b *localBackend) WriteFile(filename string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

func (b *localBackend) Writable(p string) error {
	if err := unix.Access(p, unix.W_OK); err != nil {
		return &fs.PathError{Op: "access", Path: p, Err: err}
	}
	return nil
}

func (b *localBackend) RunEnv(ctx context.Context, dir string, args []string, env []string, stdout, stderr io.Writer) error {
	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Dir = dir
	c.Env = env

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	c.Stdout = stdout
	c.Stderr = stderr

	return c.Run()
}

func (b *localBackend) Output(ctx context.Context, dir string, args []string, env []string) ([]byte, error) {
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	err := b.RunEnv(ctx, dir, args, env, buf, errBuf)
	if err != nil {
		if msg := bytes.TrimSpace(errBuf.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return buf.Bytes(), nil
}
