package main

import (
	"fmt"
	"path/filepath"
)

type buildEngine int

const (
	engineAutotools buildEngine = iota // ./configure && make && make install
	engineCmake                        // cmake in build/, then make
)

func (e buildEngine) String() string {
	switch e {
	case engineAutotools:
		return "autotools"
	case engineCmake:
		return "cmake"
	default:
		return fmt.Sprintf("engine(%d)", int(e))
	}
}

// buildPolicy holds per package quirks of the native build
type buildPolicy struct {
	// ReliableParallel is false for packages whose build sometimes breaks
	// with many jobs. Those get a serial make pass after the parallel one.
	ReliableParallel bool
}

type pkgDef struct {
	Name    string // repository name, also the checkout directory
	EnvName string // variable holding the checkout path in setup_mage.sh
	Fork    string // github owner
	Branch  string
	Engine  buildEngine
	Args    []string // extra configure arguments, shell expanded
	Policy  buildPolicy

	dir string
}

const defaultFork = "mppmu"
const defaultBranch = "master"

// defaultPackages returns the packages in dependency order: MaGe links
// against MGDO, mage-post-proc against both.
func defaultPackages() []*pkgDef {
	return []*pkgDef{
		{
			Name:    "MGDO",
			EnvName: "MGDODIR",
			Fork:    defaultFork,
			Branch:  defaultBranch,
			Engine:  engineAutotools,
			Args:    []string{"--enable-streamers", "--enable-tam"},
			Policy:  buildPolicy{ReliableParallel: true},
		},
		{
			Name:    "MaGe",
			EnvName: "MAGEDIR",
			Fork:    defaultFork,
			Branch:  defaultBranch,
			Engine:  engineAutotools,
			Args:    []string{"--disable-g4gdml"},
			Policy:  buildPolicy{ReliableParallel: false},
		},
		{
			Name:    "mage-post-proc",
			EnvName: "MPPDIR",
			Fork:    defaultFork,
			Branch:  defaultBranch,
			Engine:  engineCmake,
			Policy:  buildPolicy{ReliableParallel: true},
		},
	}
}

// findPackage looks up a package by name, also accepting the short
// flag prefix (mgdo, mage, mpp)
func findPackage(list []*pkgDef, name string) *pkgDef {
	for _, p := range list {
		if p.Name == name || p.flagPrefix() == name {
			return p
		}
	}
	return nil
}

func (p *pkgDef) flagPrefix() string {
	switch p.Name {
	case "MGDO":
		return "mgdo"
	case "MaGe":
		return "mage"
	case "mage-post-proc":
		return "mpp"
	}
	return p.Name
}

func (p *pkgDef) setBase(buildPath string) {
	p.dir = filepath.Join(buildPath, p.Name)
}

func (p *pkgDef) url(auth authMode) string {
	if auth == authSSH {
		return "git@github.com:" + p.Fork + "/" + p.Name + ".git"
	}
	return "https://github.com/" + p.Fork + "/" + p.Name + ".git"
}
