package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/shell"
)

// fileConfig is the optional YAML file given with --config. Every value is
// a default that command line flags override.
type fileConfig struct {
	BuildPath   string                    `yaml:"build_path,omitempty"`
	InstallPath string                    `yaml:"install_path,omitempty"`
	Auth        string                    `yaml:"auth,omitempty"`
	Jobs        int                       `yaml:"jobs,omitempty"`
	Packages    map[string]*packageConfig `yaml:"packages,omitempty"`
}

type packageConfig struct {
	Fork   string   `yaml:"fork,omitempty"`
	Branch string   `yaml:"branch,omitempty"`
	Args   []string `yaml:"configure_args,flow,omitempty"`
}

func readConfig(fn string, getenv func(string) string) (*fileConfig, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg *fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	err = dec.Decode(&cfg)
	if errors.Is(err, io.EOF) {
		// empty file
		return &fileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	if cfg == nil {
		// null document
		return &fileConfig{}, nil
	}

	// paths may refer to the environment, eg. $HOME/.local
	for _, p := range []*string{&cfg.BuildPath, &cfg.InstallPath} {
		if *p == "" {
			continue
		}
		*p, err = shell.Expand(*p, getenv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
	}
	return cfg, nil
}

// applyPackages copies per package settings onto list
func (cfg *fileConfig) applyPackages(list []*pkgDef) error {
	for name, pc := range cfg.Packages {
		p := findPackage(list, name)
		if p == nil {
			return fmt.Errorf("config: unknown package %s", name)
		}
		if pc == nil {
			continue
		}
		if pc.Fork != "" {
			p.Fork = pc.Fork
		}
		if pc.Branch != "" {
			p.Branch = pc.Branch
		}
		p.Args = append(p.Args, pc.Args...)
	}
	return nil
}
