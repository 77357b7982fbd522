package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const longUsage = `Downloads and compiles MGDO, MaGe and mage-post-proc in the build path,
installs them to the install path and writes setup_mage.sh to the build path.

Commands:
  install     fetch missing packages, build and install them
  clean       uninstall and remove the sources and setup_mage.sh
  reinstall   clean, then install

The Geant4 environment must be loaded (G4LEDATA set) and ROOT must be
found either through ROOTSYS or root-config in PATH.`

// these are replaced in tests
var (
	newBackend = NewLocal
	environ    = os.Environ
)

type cliOptions struct {
	buildPath   string
	installPath string
	auth        string
	jobs        int
	config      string
	forks       map[string]*string
	branches    map[string]*string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{
		forks:    make(map[string]*string),
		branches: make(map[string]*string),
	}

	cmd := &cobra.Command{
		Use:           "mage-install [flags] install|clean|reinstall",
		Short:         "Build and install MGDO, MaGe and mage-post-proc",
		Long:          longUsage,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && isHelp(args[0]) {
				return cmd.Help()
			}
			if len(args) != 1 {
				return &usageError{msg: fmt.Sprintf("expected exactly one command, got %d", len(args))}
			}

			req, err := opts.request(cmd, args[0])
			if err != nil {
				return err
			}

			inst := newInstaller(req, newBackend(), environ(), cmd.OutOrStdout())
			return inst.run(cmd.Context())
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.buildPath, "build-path", "b", ".", "where sources are checked out and built")
	flags.StringVarP(&opts.installPath, "install-path", "i", "", "installation prefix, must exist (default build path)")
	flags.StringVar(&opts.auth, "auth", string(authHTTPS), "git transport, https or ssh")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "parallel make jobs")
	flags.StringVarP(&opts.config, "config", "c", "", "YAML file with defaults")

	for _, p := range defaultPackages() {
		fp := p.flagPrefix()
		opts.forks[p.Name] = flags.String(fp+"-fork", p.Fork, fmt.Sprintf("github owner of the %s repository", p.Name))
		opts.branches[p.Name] = flags.String(fp+"-branch", p.Branch, fmt.Sprintf("%s branch to check out", p.Name))
	}

	return cmd
}

// request merges built-in defaults, the config file and the flags
func (o *cliOptions) request(cmd *cobra.Command, arg string) (*request, error) {
	c, err := parseCommand(arg)
	if err != nil {
		return nil, err
	}

	req := &request{
		Command:  c,
		Packages: defaultPackages(),
	}
	auth := string(authHTTPS)
	req.Jobs = o.jobs

	flags := cmd.Flags()

	if o.config != "" {
		cfg, err := readConfig(o.config, os.Getenv)
		if err != nil {
			return nil, err
		}
		req.BuildPath = cfg.BuildPath
		req.InstallPath = cfg.InstallPath
		if cfg.Auth != "" {
			auth = cfg.Auth
		}
		if cfg.Jobs != 0 && !flags.Changed("jobs") {
			req.Jobs = cfg.Jobs
		}
		if err := cfg.applyPackages(req.Packages); err != nil {
			return nil, err
		}
	}

	if flags.Changed("build-path") || req.BuildPath == "" {
		req.BuildPath = o.buildPath
	}
	if flags.Changed("install-path") {
		req.InstallPath = o.installPath
	}
	if flags.Changed("auth") {
		auth = o.auth
	}
	req.Auth, err = parseAuth(auth)
	if err != nil {
		return nil, err
	}

	for _, p := range req.Packages {
		fp := p.flagPrefix()
		if flags.Changed(fp + "-fork") {
			p.Fork = strings.TrimSpace(*o.forks[p.Name])
		}
		if flags.Changed(fp + "-branch") {
			p.Branch = strings.TrimSpace(*o.branches[p.Name])
		}
		if p.Fork == "" || p.Branch == "" {
			return nil, &usageError{msg: fmt.Sprintf("%s: fork and branch must not be empty", p.Name)}
		}
	}

	return req, nil
}
