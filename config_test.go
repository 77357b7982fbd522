package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "mage.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}

func TestReadConfig(t *testing.T) {
	fn := writeConfig(t, `
build_path: $HOME/src
install_path: ${HOME}/.local
auth: ssh
jobs: 3
packages:
  MaGe:
    fork: alice
    branch: dev
  mpp:
    configure_args: [-DWITH_TESTS=OFF]
`)
	env := map[string]string{"HOME": "/home/alice"}

	cfg, err := readConfig(fn, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/src", cfg.BuildPath)
	assert.Equal(t, "/home/alice/.local", cfg.InstallPath)
	assert.Equal(t, "ssh", cfg.Auth)
	assert.Equal(t, 3, cfg.Jobs)

	pkgs := defaultPackages()
	require.NoError(t, cfg.applyPackages(pkgs))
	assert.Equal(t, "alice", pkgs[1].Fork)
	assert.Equal(t, "dev", pkgs[1].Branch)
	assert.Equal(t, defaultFork, pkgs[0].Fork)
	assert.Equal(t, []string{"-DWITH_TESTS=OFF"}, pkgs[2].Args)
}

func TestReadConfig_Empty(t *testing.T) {
	cfg, err := readConfig(writeConfig(t, ""), os.Getenv)
	require.NoError(t, err)
	assert.Equal(t, &fileConfig{}, cfg)
}

func TestReadConfig_Blank(t *testing.T) {
	cfg, err := readConfig(writeConfig(t, "\n\n"), os.Getenv)
	require.NoError(t, err)
	assert.Equal(t, &fileConfig{}, cfg)
}

func TestReadConfig_UnknownField(t *testing.T) {
	_, err := readConfig(writeConfig(t, "jobz: 4\n"), os.Getenv)
	assert.ErrorContains(t, err, "jobz")
}

func TestReadConfig_UnknownPackage(t *testing.T) {
	cfg, err := readConfig(writeConfig(t, "packages:\n  GAT:\n    fork: x\n"), os.Getenv)
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.applyPackages(defaultPackages()), "unknown package GAT")
}

func TestReadConfig_Missing(t *testing.T) {
	_, err := readConfig(filepath.Join(t.TempDir(), "nope.yaml"), os.Getenv)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
