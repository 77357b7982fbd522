package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildEnv_Merge(t *testing.T) {
	env := newChildEnv([]string{"A=1", "B=x=y", "broken", "=nope", "A=2"})

	assert.Equal(t, "2", env.Get("A"))
	assert.Equal(t, "x=y", env.Get("B"))
	assert.Equal(t, []string{"A=2", "B=x=y"}, env.Environ())
}

func TestChildEnv_MergeNul(t *testing.T) {
	env := newChildEnv([]string{"A=1"})
	env.mergeNul([]byte("A=3\x00MULTI=line1\nline2\x00\x00"))

	assert.Equal(t, "3", env.Get("A"))
	assert.Equal(t, "line1\nline2", env.Get("MULTI"))
}

func TestChildEnv_EmptyIsSet(t *testing.T) {
	env := newChildEnv([]string{"EMPTY="})

	v, ok := env.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = env.Lookup("MISSING")
	assert.False(t, ok)
}
