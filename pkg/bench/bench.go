// Package bench holds the benchmark catalog, the ordered immutable
// registry of suites and cases, and the runner that enumerates it.
//
// Suites register themselves during init. After process start the
// catalog never changes; registration order is iteration order and
// therefore report order.
package bench

import (
	"fmt"

	"github.com/hweber/blockbench/pkg/define"
)

// Flags is the case/suite flag bit-set.
type Flags uint8

const (
	// FlagInternal hides a case from default discovery; internal cases
	// run only when explicitly requested.
	FlagInternal Flags = 0x1
)

// Case is one benchmarkable unit.
type Case struct {
	// Name identifies the case within its suite.
	Name string

	// Source labels where the case is defined, for reporting.
	Source string

	Flags Flags

	// Defines is the ordered case-level define sequence. Order fixes
	// digit significance in the flat run index: the first define varies
	// fastest. Case defines shadow same-named suite defines.
	Defines []define.Define

	// If gates the whole case independent of define values. Nil means
	// always eligible; false means the case contributes zero runs.
	If func() bool

	// Run executes one configuration. It is called exactly once per
	// flat index with a freshly resolved context.
	Run func(*Ctx) error
}

// Suite is a named group of cases sharing a baseline define sequence.
type Suite struct {
	Name    string
	Source  string
	Flags   Flags
	Defines []define.Define
	Cases   []*Case
}

// EffectiveDefines returns the merged define sequence for a case under
// this suite: base is the lowest-precedence layer (the engine's implicit
// defines), suite and case defines shadow it by name, and overrides (the
// -D flags) shadow everything.
func (s *Suite) EffectiveDefines(c *Case, base, overrides []define.Define) []define.Define {
	return define.Merge(base, s.Defines, c.Defines, overrides)
}

var suites []*Suite

// Register appends a suite to the catalog. It is meant to be called from
// suite files' init functions; registering a duplicate or malformed
// suite is a programmer error and panics.
func Register(s *Suite) {
	if s == nil || s.Name == "" {
		panic("bench: register of unnamed suite")
	}
	for _, existing := range suites {
		if existing.Name == s.Name {
			panic(fmt.Sprintf("bench: duplicate suite %q", s.Name))
		}
	}
	seen := make(map[string]bool, len(s.Cases))
	for _, c := range s.Cases {
		if c == nil || c.Name == "" {
			panic(fmt.Sprintf("bench: suite %q has an unnamed case", s.Name))
		}
		if seen[c.Name] {
			panic(fmt.Sprintf("bench: suite %q has duplicate case %q", s.Name, c.Name))
		}
		seen[c.Name] = true
	}
	suites = append(suites, s)
}

// Suites returns the catalog in registration order. The returned slice
// is shared and must not be modified.
func Suites() []*Suite {
	return suites
}

// FindSuite returns the named suite, or nil.
func FindSuite(name string) *Suite {
	for _, s := range suites {
		if s.Name == name {
			return s
		}
	}
	return nil
}
