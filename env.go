package main

import (
	"bytes"
	"sort"
	"strings"
)

// childEnv is the environment handed to every command the installer runs.
// The process environment itself is never modified.
type childEnv struct {
	vars map[string]string
}

func newChildEnv(environ []string) *childEnv {
	c := &childEnv{vars: make(map[string]string)}
	c.merge(environ)
	return c
}

// merge applies a list of KEY=VALUE entries, later entries winning
func (c *childEnv) merge(environ []string) {
	for _, setv := range environ {
		p := strings.IndexByte(setv, '=')
		if p <= 0 {
			continue
		}
		c.vars[setv[:p]] = setv[p+1:]
	}
}

// mergeNul applies the output of `env -0`
func (c *childEnv) mergeNul(out []byte) {
	var list []string
	for _, kv := range bytes.Split(out, []byte{0}) {
		if len(kv) > 0 {
			list = append(list, string(kv))
		}
	}
	c.merge(list)
}

func (c *childEnv) Get(k string) string {
	return c.vars[k]
}

func (c *childEnv) Lookup(k string) (string, bool) {
	v, ok := c.vars[k]
	return v, ok
}

func (c *childEnv) Set(k, v string) {
	c.vars[k] = v
}

// apply evaluates the exports of m the way bash would when sourcing it,
// statement by statement, so later values see earlier ones.
func (c *childEnv) apply(m *envManifest) error {
	for _, st := range m.stmts {
		if st.kind == stmtSource {
			continue
		}
		var parts []string
		for _, p := range st.parts {
			b := &strings.Builder{}
			for _, w := range p {
				if w.ref != "" {
					b.WriteString(c.Get(w.ref))
				} else {
					b.WriteString(w.lit)
				}
			}
			parts = append(parts, b.String())
		}
		if old := c.Get(st.name); st.kind == stmtPrepend && old != "" {
			parts = append(parts, old)
		}
		c.vars[st.name] = strings.Join(parts, ":")
	}
	return nil
}

// Environ returns the environment as sorted KEY=VALUE entries
func (c *childEnv) Environ() []string {
	res := make([]string, 0, len(c.vars))
	for k, v := range c.vars {
		res = append(res, k+"="+v)
	}
	sort.Strings(res)
	return res
}
