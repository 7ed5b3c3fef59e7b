package pr

import "github.com/leapstack-labs/prqlcore/pkg/token"

// VarDefKind distinguishes the three `let` rendering modes.
type VarDefKind int

const (
	VarDefLet VarDefKind = iota
	VarDefMain
	VarDefInto
)

// StmtKind discriminates the Stmt variants.
type StmtKind int

const (
	StmtQueryDef StmtKind = iota
	StmtVarDef
	StmtTypeDef
	StmtModuleDef
	StmtImportDef
)

// QueryDef is the `prql version:"^0.9" target:sql.sqlite` header.
type QueryDef struct {
	Version string // already includes surrounding quotes' content, not the quotes themselves; "" means absent
	Other   []KeyValue
}

// KeyValue is one bare `key:value` pair in a query header.
type KeyValue struct {
	Key   string
	Value string
}

// VarDef is a `let`/main/`into` statement.
type VarDef struct {
	Kind  VarDefKind
	Name  string
	Type  *Expr // optional declared type
	Value *Expr // nil for `let a` / `let a <int>` with no value
}

// TypeDef is a `type name [= ty]` statement.
type TypeDef struct {
	Name  string
	Value *Expr
}

// ModuleDef is a `module name { ... }` statement.
type ModuleDef struct {
	Name  string
	Stmts []*Stmt
}

// ImportDef is an `import [alias =] path` statement.
type ImportDef struct {
	Alias string // "" if none
	Path  *Expr  // an Ident expression naming the imported module
}

// Annotation is an `@expr` line preceding a statement.
type Annotation struct {
	Expr *Expr
}

// Stmt is a top-level or module-nested declaration.
type Stmt struct {
	Kind        StmtKind
	Span        *token.Span
	Annotations []Annotation
	Comments    []token.Token // trailing comments attached by the Comment Attacher

	QueryDef  *QueryDef
	VarDef    *VarDef
	TypeDef   *TypeDef
	ModuleDef *ModuleDef
	ImportDef *ImportDef
}
