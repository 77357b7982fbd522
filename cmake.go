package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

const cmakeManifest = "install_manifest.txt"

func cmakeBuildDir(p *pkgDef) string {
	return filepath.Join(p.dir, "build")
}

func (i *installer) buildCmake(ctx context.Context, p *pkgDef) error {
	buildDir := cmakeBuildDir(p)
	err := i.backend.MkdirAll(buildDir, 0755)
	if err != nil {
		return err
	}

	// initial cache, passed with -C
	commonConfig := filepath.Join(buildDir, "mage_install.cmake")
	f := &bytes.Buffer{}
	fmt.Fprintf(f, `set(CMAKE_INSTALL_PREFIX %s CACHE PATH "")`+"\n", cmakeQuote(i.req.prefix()))
	fmt.Fprintf(f, `set(CMAKE_BUILD_TYPE "Release" CACHE STRING "")`+"\n")
	fmt.Fprintf(f, `set(CMAKE_PREFIX_PATH %s CACHE PATH "")`+"\n", cmakeQuote(i.req.prefix()+";"+i.rootPrefix))
	if i.cxxStd != "" {
		fmt.Fprintf(f, `set(CMAKE_CXX_STANDARD %s CACHE STRING "match ROOT")`+"\n", cmakeQuote(i.cxxStd))
	}
	err = i.backend.WriteFile(commonConfig, f.Bytes(), 0644)
	if err != nil {
		return err
	}

	cmakeOpts := []string{
		"cmake",
		"-C", commonConfig,
		p.dir,
	}
	for _, arg := range p.Args {
		arg, err := shell.Expand(arg, i.getVar)
		if err != nil {
			return err
		}
		cmakeOpts = append(cmakeOpts, arg)
	}

	err = i.runIn(ctx, buildDir, cmakeOpts...)
	if err != nil {
		return err
	}

	err = i.compile(ctx, p, buildDir)
	if err != nil {
		return err
	}

	return i.runIn(ctx, buildDir, "make", "install")
}

// removeInstalled removes the files cmake recorded at install time. It
// reports whether an install manifest was found.
func (i *installer) removeInstalled(ctx context.Context, p *pkgDef) (bool, error) {
	data, err := i.backend.ReadFile(filepath.Join(cmakeBuildDir(p), cmakeManifest))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	for _, fn := range readLines(data) {
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		err := i.backend.Remove(fn)
		switch {
		case err == nil:
			log.Printf("removed %s", fn)
		case errors.Is(err, fs.ErrNotExist):
		default:
			log.Printf("failed to remove %s: %s", fn, err)
		}
	}
	return true, nil
}

// cmakeQuote escapes s for use inside a quoted cmake argument
func cmakeQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}
