package main

import (
	"context"
	"fmt"
	"path/filepath"

	"mvdan.cc/sh/v3/shell"
)

func (i *installer) buildAutotools(ctx context.Context, p *pkgDef) error {
	cnf := i.findConfigure(p)
	if cnf == "" {
		return fmt.Errorf("could not find configure in %s", p.dir)
	}

	args := []string{cnf, "--prefix=" + i.req.prefix()}

	for _, arg := range p.Args {
		arg, err := shell.Expand(arg, i.getVar)
		if err != nil {
			return err
		}
		args = append(args, arg)
	}

	err := i.runIn(ctx, p.dir, args...)
	if err != nil {
		return err
	}

	err = i.compile(ctx, p, p.dir)
	if err != nil {
		return err
	}

	return i.runIn(ctx, p.dir, "make", "install")
}

func (i *installer) findConfigure(p *pkgDef) string {
	t := filepath.Join(p.dir, "configure")
	if st, err := i.backend.Stat(t); err == nil && st.Mode()&0111 != 0 {
		return t
	}
	return ""
}

// uninstallAutotools runs make uninstall when the package was configured
func (i *installer) uninstallAutotools(ctx context.Context, p *pkgDef) error {
	for _, mk := range []string{"GNUmakefile", "Makefile"} {
		if i.exists(filepath.Join(p.dir, mk)) {
			return i.runIn(ctx, p.dir, "make", "uninstall")
		}
	}
	return nil
}
