package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/fatih/color"
)

type installer struct {
	req     *request
	backend Backend
	env     *childEnv
	stdout  io.Writer

	rootPrefix string // ROOT install prefix
	cxxStd     string // C++ standard ROOT was built with, eg. 17
	g4Share    string // Geant4 share dir derived from G4LEDATA
	vars       map[string]string
}

func newInstaller(req *request, b Backend, environ []string, stdout io.Writer) *installer {
	return &installer{
		req:     req,
		backend: b,
		env:     newChildEnv(environ),
		stdout:  stdout,
		vars:    make(map[string]string),
	}
}

// getVar resolves variables in configure arguments
func (i *installer) getVar(v string) string {
	if r, ok := i.vars[v]; ok {
		return r
	}
	return i.env.Get(v)
}

func (i *installer) run(ctx context.Context) error {
	if err := i.req.resolve(i.backend); err != nil {
		return err
	}

	switch i.req.Command {
	case cmdClean:
		return i.clean(ctx)
	case cmdReinstall:
		if err := i.clean(ctx); err != nil {
			return err
		}
		return i.install(ctx)
	case cmdInstall:
		return i.install(ctx)
	default:
		return &usageError{msg: fmt.Sprintf("unknown command %q", i.req.Command)}
	}
}

// clean uninstalls what the build tools recorded, newest package first, then
// removes the checkouts and the setup script. Nothing missing is an error.
func (i *installer) clean(ctx context.Context) error {
	pkgs := i.req.Packages
	for n := len(pkgs) - 1; n >= 0; n-- {
		p := pkgs[n]
		if !i.exists(p.dir) {
			continue
		}
		log.Printf("uninstalling %s", p.Name)
		// a recorded install manifest wins over the uninstall target
		found, err := i.removeInstalled(ctx, p)
		if err == nil && !found {
			err = i.uninstallAutotools(ctx, p)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("%s: uninstall failed, removing sources anyway: %s", p.Name, err)
		}
	}

	for _, p := range pkgs {
		log.Printf("removing %s", p.dir)
		if err := i.backend.RemoveAll(p.dir); err != nil {
			return err
		}
	}
	if err := i.backend.RemoveAll(i.req.manifestPath()); err != nil {
		return err
	}
	return nil
}

func (i *installer) install(ctx context.Context) error {
	err := i.backend.MkdirAll(i.req.BuildPath, 0755)
	if err != nil {
		return err
	}

	err = i.probe(ctx)
	if err != nil {
		return err
	}

	m, err := i.writeManifest()
	if err != nil {
		return err
	}

	err = i.loadEnv(ctx, m)
	if err != nil {
		return err
	}

	err = i.fetchAll(ctx)
	if err != nil {
		return err
	}

	for _, p := range i.req.Packages {
		log.Printf("building %s using %s", p.Name, p.Engine)
		switch p.Engine {
		case engineCmake:
			err = i.buildCmake(ctx, p)
		default:
			err = i.buildAutotools(ctx, p)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	}

	fmt.Fprintf(i.stdout, "%s\n", color.GreenString("Installation complete."))
	fmt.Fprintf(i.stdout, "Environment written to %s\n", i.req.manifestPath())
	fmt.Fprintf(i.stdout, "Load it in your shell with (or add to your login script):\n")
	fmt.Fprintf(i.stdout, "  source %s\n", shellQuote(i.req.manifestPath()))
	return nil
}

func (i *installer) layout() *setupLayout {
	_, clhep := i.env.Lookup("CLHEP_INCLUDE_DIR")
	return &setupLayout{
		InstallPath: i.req.prefix(),
		G4Share:     i.g4Share,
		Packages:    i.req.Packages,
		ClhepInc:    clhep,
		Darwin:      runtime.GOOS == "darwin",
	}
}

// writeManifest regenerates setup_mage.sh from scratch
func (i *installer) writeManifest() (*envManifest, error) {
	m := newSetupManifest(i.layout())
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("generated %s does not parse: %w", setupFileName, err)
	}

	tgt := i.req.manifestPath()
	log.Printf("generating %s", tgt)
	if err := i.backend.WriteFile(tgt+"~", []byte(m.render()), 0644); err != nil {
		return nil, err
	}
	return m, i.backend.Rename(tgt+"~", tgt)
}

// loadEnv prepares the environment of build commands as if setup_mage.sh
// had been sourced.
func (i *installer) loadEnv(ctx context.Context, m *envManifest) error {
	if _, ok := i.env.Lookup("G4INSTALL"); !ok {
		script := filepath.Join(i.g4Share, "geant4make", "geant4make.sh")
		if !i.exists(script) {
			return fmt.Errorf("Geant4 environment not loaded and %s not found", script)
		}
		log.Printf("loading Geant4 environment from %s", script)
		out, err := i.backend.Output(ctx, i.req.BuildPath,
			[]string{"bash", "-c", `source "$1" >/dev/null && env -0`, "bash", script}, i.env.Environ())
		if err != nil {
			return fmt.Errorf("failed to source %s: %w", script, err)
		}
		i.env.mergeNul(out)
	}

	i.vars["INSTALL_PATH"] = i.req.prefix()
	i.vars["BUILD_PATH"] = i.req.BuildPath
	i.vars["ROOTSYS"] = i.rootPrefix
	i.vars["CXX_STANDARD"] = i.cxxStd
	i.vars["JOBS"] = strconv.Itoa(i.req.Jobs)

	return i.env.apply(m)
}

func (i *installer) exists(p string) bool {
	_, err := i.backend.Stat(p)
	return err == nil
}

// runIn runs a command, failing on non-zero exit
func (i *installer) runIn(ctx context.Context, dir string, args ...string) error {
	log.Printf("running %s (in %s)", shellQuoteCmd(args...), dir)
	err := i.backend.RunEnv(ctx, dir, args, i.env.Environ(), nil, nil)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		return fmt.Errorf("%s failed: %w", filepath.Base(args[0]), err)
	}
	return nil
}

// compile runs make in dir, honoring the package build policy
func (i *installer) compile(ctx context.Context, p *pkgDef, dir string) error {
	jobs := i.req.Jobs
	err := i.runIn(ctx, dir, "make", "-j"+strconv.Itoa(jobs))
	if p.Policy.ReliableParallel || jobs <= 1 {
		return err
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		log.Printf("%s: parallel build failed, continuing serially: %s", p.Name, err)
	}
	log.Printf("%s: running serial build pass", p.Name)
	return i.runIn(ctx, dir, "make", "-j1")
}
