// Package dialect names the target SQL dialects the Operator Translator
// can render for, and keeps a registry of known dialect names: a
// sync.RWMutex-guarded map, filled with the built-in names at init and
// extendable by name through Register. It holds names only, not operator
// definitions; clause-level SQL grammar has no place here (parsing is out
// of scope).
package dialect

import (
	"sort"
	"strings"
	"sync"
)

// Name identifies a target SQL dialect by its canonical lowercase string,
// matching the `target:sql.<name>` query header value.
type Name string

const (
	Generic   Name = "generic"
	Postgres  Name = "postgres"
	MSSQL     Name = "mssql"
	SQLite    Name = "sqlite"
	DuckDB    Name = "duckdb"
	BigQuery  Name = "bigquery"
	Snowflake Name = "snowflake"
)

// Canonical normalizes a dialect string (case-insensitive, accepting the
// `sql.<name>` query-header spelling) to its registry key.
func Canonical(s string) Name {
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, "sql.")
	return Name(s)
}

var (
	mu       sync.RWMutex
	registry = make(map[Name]struct{})
)

func init() {
	for _, n := range []Name{Generic, Postgres, MSSQL, SQLite, DuckDB, BigQuery, Snowflake} {
		registry[n] = struct{}{}
	}
}

// Register adds a dialect name to the known set. Nothing in this module
// calls it; oplib's submodules are not registered here.
func Register(n Name) {
	mu.Lock()
	defer mu.Unlock()
	registry[n] = struct{}{}
}

// Known reports whether a dialect name has been registered.
func Known(n Name) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[n]
	return ok
}

// List returns all registered dialect names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}
