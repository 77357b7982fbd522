package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCmd struct {
	dir  string
	args []string
}

func (c fakeCmd) String() string {
	return strings.Join(c.args, " ")
}

// fakeBackend uses the real filesystem but only pretends to run commands.
// git clone creates a checkout with an executable configure, configure
// writes a Makefile and make install in a cmake build dir writes an install
// manifest listing a file it creates under the prefix.
type fakeBackend struct {
	localBackend

	t       *testing.T
	prefix  string
	cmds    []fakeCmd
	outputs []string
	fail    func(c fakeCmd) error
	out     map[string]string // Output results, keyed by command line
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{t: t, out: make(map[string]string)}
}

func (b *fakeBackend) RunEnv(ctx context.Context, dir string, args []string, env []string, stdout, stderr io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := fakeCmd{dir: dir, args: append([]string(nil), args...)}
	b.cmds = append(b.cmds, c)
	if b.fail != nil {
		if err := b.fail(c); err != nil {
			return err
		}
	}

	switch {
	case args[0] == "git" && args[1] == "clone":
		tgt := args[len(args)-1]
		require.NoError(b.t, os.MkdirAll(tgt, 0755))
		require.NoError(b.t, os.WriteFile(filepath.Join(tgt, "configure"), []byte("#!/bin/sh\n"), 0755))
		require.NoError(b.t, os.WriteFile(filepath.Join(tgt, "CMakeLists.txt"), nil, 0644))
	case filepath.Base(args[0]) == "configure":
		require.NoError(b.t, os.WriteFile(filepath.Join(dir, "Makefile"), nil, 0644))
	case args[0] == "make" && len(args) > 1 && args[1] == "install" && filepath.Base(dir) == "build":
		installed := filepath.Join(b.prefix, "lib", "libmpp.so")
		require.NoError(b.t, os.MkdirAll(filepath.Dir(installed), 0755))
		require.NoError(b.t, os.WriteFile(installed, nil, 0644))
		require.NoError(b.t, os.WriteFile(filepath.Join(dir, cmakeManifest), []byte(installed+"\n"), 0644))
	}
	return nil
}

func (b *fakeBackend) Output(ctx context.Context, dir string, args []string, env []string) ([]byte, error) {
	line := strings.Join(args, " ")
	b.outputs = append(b.outputs, line)
	if v, ok := b.out[line]; ok {
		return []byte(v), nil
	}
	return nil, fmt.Errorf("%s: command not found", args[0])
}

// commands returns the recorded command lines
func (b *fakeBackend) commands() []string {
	var res []string
	for _, c := range b.cmds {
		res = append(res, c.String())
	}
	return res
}

func testEnviron() []string {
	return []string{
		"PATH=/usr/bin:/bin",
		"G4LEDATA=/opt/geant4/share/Geant4-10.7.1/data/G4EMLOW7.13",
		"G4INSTALL=/opt/geant4",
		"ROOTSYS=/opt/root",
	}
}

// newTestInstaller returns an installer for cmd rooted in a fresh temp dir
func newTestInstaller(t *testing.T, cmd command) (*installer, *fakeBackend, *strings.Builder) {
	t.Helper()
	b := newFakeBackend(t)
	b.out["root-config --cflags"] = "-pthread -std=c++17 -m64 -I/opt/root/include\n"

	req := &request{
		Command:   cmd,
		BuildPath: t.TempDir(),
		Auth:      authHTTPS,
		Jobs:      4,
		Packages:  defaultPackages(),
	}
	b.prefix = req.BuildPath

	out := &strings.Builder{}
	return newInstaller(req, b, testEnviron(), out), b, out
}

// useFakes routes the command line to b with the given environment
func useFakes(t *testing.T, b *fakeBackend, env []string) {
	t.Helper()
	oldBackend, oldEnv := newBackend, environ
	newBackend = func() Backend { return b }
	environ = func() []string { return env }
	t.Cleanup(func() {
		newBackend, environ = oldBackend, oldEnv
	})
}
