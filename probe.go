package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// G4LEDATA points at .../share/Geant4-x.y.z/data/G4EMLOWn.m
	g4DataSuffix = regexp.MustCompile(`data/G4EMLOW.*`)
	cxxStdFlag   = regexp.MustCompile(`-std=(?:c|gnu)\+\+(\d+)`)
)

// probe locates the third party software the packages build against
func (i *installer) probe(ctx context.Context) error {
	var err error
	i.rootPrefix, err = i.findRoot(ctx)
	if err != nil {
		return err
	}
	log.Printf("using ROOT from %s", i.rootPrefix)

	i.cxxStd = i.rootCxxStandard(ctx)
	if i.cxxStd != "" {
		log.Printf("ROOT was built with C++%s", i.cxxStd)
	}

	i.g4Share, err = geant4Share(i.env)
	if err != nil {
		return err
	}
	log.Printf("using Geant4 from %s", i.g4Share)
	return nil
}

// findRoot returns $ROOTSYS, or asks root-config
func (i *installer) findRoot(ctx context.Context) (string, error) {
	if v := i.env.Get("ROOTSYS"); v != "" {
		return filepath.Clean(v), nil
	}
	out, err := i.backend.Output(ctx, i.req.BuildPath, []string{"root-config", "--prefix"}, i.env.Environ())
	if err != nil {
		return "", fmt.Errorf("could not find ROOT, set ROOTSYS or put root-config in PATH: %w", err)
	}
	p := strings.TrimSpace(string(out))
	if p == "" {
		return "", fmt.Errorf("could not find ROOT: root-config --prefix returned nothing")
	}
	return p, nil
}

func (i *installer) rootConfig() string {
	rc := filepath.Join(i.rootPrefix, "bin", "root-config")
	if i.exists(rc) {
		return rc
	}
	return "root-config"
}

// rootCxxStandard returns the -std=c++NN value from root-config --cflags, if any.
// mage-post-proc must be compiled with the same standard as ROOT.
func (i *installer) rootCxxStandard(ctx context.Context) string {
	out, err := i.backend.Output(ctx, i.req.BuildPath, []string{i.rootConfig(), "--cflags"}, i.env.Environ())
	if err != nil {
		log.Printf("root-config --cflags failed: %s", err)
		return ""
	}
	return cxxStandard(string(out))
}

func cxxStandard(cflags string) string {
	m := cxxStdFlag.FindStringSubmatch(cflags)
	if m == nil {
		return ""
	}
	return m[1]
}

// geant4Share derives the Geant4 share directory from G4LEDATA
func geant4Share(env *childEnv) (string, error) {
	data, ok := env.Lookup("G4LEDATA")
	if !ok || data == "" {
		return "", fmt.Errorf("G4LEDATA is not set, load your Geant4 environment first")
	}
	loc := g4DataSuffix.FindStringIndex(data)
	if loc == nil {
		return "", fmt.Errorf("G4LEDATA=%s does not end in data/G4EMLOW*", data)
	}
	return filepath.Clean(data[:loc[0]]), nil
}
