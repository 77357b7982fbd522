package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCxxStandard(t *testing.T) {
	tests := []struct {
		cflags string
		want   string
	}{
		{"-pthread -std=c++17 -m64 -I/opt/root/include", "17"},
		{"-std=gnu++14 -I/usr/include/root", "14"},
		{"-pthread -m64 -I/opt/root/include", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cxxStandard(tt.cflags), tt.cflags)
	}
}

func TestGeant4Share(t *testing.T) {
	share, err := geant4Share(newChildEnv([]string{"G4LEDATA=/opt/geant4/share/Geant4-10.7.1/data/G4EMLOW7.13"}))
	require.NoError(t, err)
	assert.Equal(t, "/opt/geant4/share/Geant4-10.7.1", share)
}

func TestGeant4Share_Missing(t *testing.T) {
	_, err := geant4Share(newChildEnv(nil))
	assert.ErrorContains(t, err, "G4LEDATA is not set")

	_, err = geant4Share(newChildEnv([]string{"G4LEDATA="}))
	assert.Error(t, err)
}

func TestGeant4Share_Unrecognized(t *testing.T) {
	_, err := geant4Share(newChildEnv([]string{"G4LEDATA=/somewhere/else"}))
	assert.ErrorContains(t, err, "does not end in data/G4EMLOW")
}
