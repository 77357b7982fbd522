package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

type command string

const (
	cmdInstall   command = "install"
	cmdClean     command = "clean"
	cmdReinstall command = "reinstall"
)

type authMode string

const (
	authHTTPS authMode = "https"
	authSSH   authMode = "ssh"
)

// usageError is reported together with the usage text
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func parseCommand(s string) (command, error) {
	switch c := command(s); c {
	case cmdInstall, cmdClean, cmdReinstall:
		return c, nil
	}
	return "", &usageError{msg: fmt.Sprintf("unknown command %q, expected install, clean or reinstall", s)}
}

func parseAuth(s string) (authMode, error) {
	switch a := authMode(strings.ToLower(s)); a {
	case authHTTPS, authSSH:
		return a, nil
	}
	return "", &usageError{msg: fmt.Sprintf("unknown authentication %q, expected https or ssh", s)}
}

// request is one invocation of the installer
type request struct {
	Command     command
	BuildPath   string
	InstallPath string // empty means BuildPath
	Auth        authMode
	Jobs        int
	Packages    []*pkgDef
}

func (r *request) installPathGiven() bool {
	return r.InstallPath != ""
}

// resolve makes the paths absolute and checks what can be checked without
// touching the filesystem. Nothing is created here.
func (r *request) resolve(b Backend) error {
	if r.Jobs < 1 {
		return &usageError{msg: fmt.Sprintf("jobs must be at least 1, got %d", r.Jobs)}
	}
	if r.BuildPath == "" {
		r.BuildPath = "."
	}
	p, err := filepath.Abs(r.BuildPath)
	if err != nil {
		return err
	}
	r.BuildPath = p

	if st, err := b.Stat(r.BuildPath); err == nil && !st.IsDir() {
		return fmt.Errorf("build path %s is not a directory", r.BuildPath)
	}

	for _, pkg := range r.Packages {
		pkg.setBase(r.BuildPath)
	}

	if !r.installPathGiven() {
		return nil
	}
	p, err = filepath.Abs(r.InstallPath)
	if err != nil {
		return err
	}
	r.InstallPath = p

	if r.Command == cmdClean {
		// clean never writes into the install path
		return nil
	}

	st, err := b.Stat(r.InstallPath)
	if err != nil || !st.IsDir() {
		return &usageError{msg: fmt.Sprintf("%s is not an existing directory, please create it first", r.InstallPath)}
	}
	if err := b.Writable(r.InstallPath); err != nil {
		var perr *fs.PathError
		if errors.As(err, &perr) {
			err = perr.Err
		}
		return fmt.Errorf("install path %s is not writable: %w", r.InstallPath, err)
	}
	return nil
}

func (r *request) prefix() string {
	if r.installPathGiven() {
		return r.InstallPath
	}
	return r.BuildPath
}

func (r *request) manifestPath() string {
	return filepath.Join(r.BuildPath, setupFileName)
}
