package main

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const setupFileName = "setup_mage.sh"

type stmtKind int

const (
	stmtSource  stmtKind = iota // source a script
	stmtSet                     // export NAME=value
	stmtPrepend                 // export NAME=a:b:$NAME
)

// word is either a literal piece of text or a reference to a variable
type word struct {
	lit string
	ref string
}

func lit(s string) word { return word{lit: s} }
func ref(name string) word { return word{ref: name} }
func comp(w ...word) []word { return w }

type statement struct {
	kind  stmtKind
	name  string   // variable name, or script path for stmtSource
	parts [][]word // one part for stmtSet, search path components for stmtPrepend
}

// envManifest is the ordered content of the generated setup script
type envManifest struct {
	stmts []*statement
}

func (m *envManifest) find(name string) *statement {
	for _, st := range m.stmts {
		if st.kind != stmtSource && st.name == name {
			return st
		}
	}
	return nil
}

func (m *envManifest) source(script string) {
	m.stmts = append(m.stmts, &statement{kind: stmtSource, name: script})
}

// set exports name as the concatenation of w. Setting a name twice replaces
// the earlier value in place.
func (m *envManifest) set(name string, w ...word) {
	if st := m.find(name); st != nil {
		st.kind = stmtSet
		st.parts = [][]word{w}
		return
	}
	m.stmts = append(m.stmts, &statement{kind: stmtSet, name: name, parts: [][]word{w}})
}

// prepend puts components in front of the current value of name. Repeated
// calls for the same name extend a single export.
func (m *envManifest) prepend(name string, components ...[]word) {
	if st := m.find(name); st != nil {
		st.parts = append(st.parts, components...)
		return
	}
	m.stmts = append(m.stmts, &statement{kind: stmtPrepend, name: name, parts: components})
}

func renderWords(w []word) string {
	b := &strings.Builder{}
	for _, x := range w {
		if x.ref != "" {
			b.WriteString("${" + x.ref + "}")
		} else {
			b.WriteString(dquoteEscape(x.lit))
		}
	}
	return b.String()
}

// value is the statement's right hand side as it appears between double quotes
func (st *statement) value() string {
	var parts []string
	for _, p := range st.parts {
		parts = append(parts, renderWords(p))
	}
	v := strings.Join(parts, ":")
	if st.kind == stmtPrepend {
		v += fmt.Sprintf("${%s:+:${%s}}", st.name, st.name)
	}
	return v
}

func (st *statement) String() string {
	if st.kind == stmtSource {
		return "source " + shellQuote(st.name)
	}
	return fmt.Sprintf("export %s=\"%s\"", st.name, st.value())
}

func (m *envManifest) render() string {
	b := &strings.Builder{}
	b.WriteString("# Generated by mage-install, rewritten on every install.\n")
	for _, st := range m.stmts {
		b.WriteString(st.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// validate makes sure the rendered script parses as bash
func (m *envManifest) validate() error {
	_, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(m.render()), setupFileName)
	return err
}

// setupLayout holds the paths the setup script records
type setupLayout struct {
	InstallPath string
	G4Share     string // Geant4 share dir, with geant4make/ below it
	Packages    []*pkgDef
	ClhepInc    bool // include ${CLHEP_INCLUDE_DIR} in ROOT_INCLUDE_PATH
	Darwin      bool
}

func newSetupManifest(l *setupLayout) *envManifest {
	m := &envManifest{}
	m.source(l.G4Share + "/geant4make/geant4make.sh")

	for _, p := range l.Packages {
		m.set(p.EnvName, lit(p.dir))
		switch p.Name {
		case "MGDO":
			m.set("TAMDIR", ref(p.EnvName), lit("/tam"))
		case "MaGe":
			m.set("MGGENERATORDATA", ref(p.EnvName), lit("/generators/data"))
		}
	}
	m.set("MAGE_INSTALL", lit(l.InstallPath))

	m.prepend("PATH", comp(ref("MAGE_INSTALL"), lit("/bin")))

	libs := [][]word{comp(ref("MAGE_INSTALL"), lit("/lib"))}
	if m.find("TAMDIR") != nil {
		libs = append(libs, comp(ref("TAMDIR"), lit("/lib")))
	}
	m.prepend("LD_LIBRARY_PATH", libs...)
	if l.Darwin {
		m.prepend("DYLD_LIBRARY_PATH", libs...)
	}

	var inc [][]word
	if l.ClhepInc {
		inc = append(inc, comp(ref("CLHEP_INCLUDE_DIR")))
	}
	inc = append(inc, comp(ref("MAGE_INSTALL"), lit("/include")))
	if m.find("TAMDIR") != nil {
		inc = append(inc, comp(ref("TAMDIR")), comp(ref("TAMDIR"), lit("/inc")))
	}
	m.prepend("ROOT_INCLUDE_PATH", inc...)

	return m
}
