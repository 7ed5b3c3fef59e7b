// Package oplib is the Operator Library Loader: a lazily parsed,
// at-most-once-initialized, process-wide tree of operator definitions
// keyed by dialect submodule and by flat top-level name. The source
// language is this module's own operator-definition mini-language (see
// operators.prql): simple template substitutions, not arbitrary
// executable code.
package oplib

import (
	_ "embed"
	"sort"
	"sync"

	"github.com/leapstack-labs/prqlcore/pkg/dialect"
)

//go:embed operators.prql
var source string

var (
	once     sync.Once
	loadErr  error
	root     map[string]*Definition
	modules  map[string]map[string]*Definition
)

func load() {
	once.Do(func() {
		modules, root, loadErr = parseSource(source)
	})
}

// Lookup resolves the bare operator name (already stripped of its `std.`
// namespace prefix by the caller, as Translate does) against the given
// dialect's submodule first, falling back to the root definitions
// (dialect-then-root lookup).
func Lookup(d dialect.Name, name string) (*Definition, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	if sub, ok := modules[string(d)]; ok {
		if def, ok := sub[name]; ok {
			return def, nil
		}
	}
	if def, ok := root[name]; ok {
		return def, nil
	}
	return nil, nil
}

// ListForDialect returns every definition resolvable for d — root
// definitions overridden by d's own submodule entries where present —
// sorted by name. Used by the CLI's operator catalog introspection
// (SPEC_FULL.md Supplemented Features).
func ListForDialect(d dialect.Name) ([]*Definition, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}

	merged := make(map[string]*Definition, len(root))
	for name, def := range root {
		merged[name] = def
	}
	if sub, ok := modules[string(d)]; ok {
		for name, def := range sub {
			merged[name] = def
		}
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]*Definition, len(names))
	for i, name := range names {
		defs[i] = merged[name]
	}
	return defs, nil
}
