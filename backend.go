package main

import (
	"context"
	"io"
	"io/fs"
	"os"
)

// Backend is where packages get fetched, built and removed
type Backend interface {
	RunEnv(ctx context.Context, dir string, args []string, env []string, stdout, stderr io.Writer) error
	Output(ctx context.Context, dir string, args []string, env []string) ([]byte, error)
	MkdirAll(dir string, mode fs.FileMode) error
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm fs.FileMode) error
	Stat(p string) (os.FileInfo, error)
	Rename(oldname, newname string) error
	Remove(f string) error
	RemoveAll(path string) error
	Writable(p string) error // nil if p can be written to by the current user
}
