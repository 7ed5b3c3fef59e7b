// Package rq is the relational-query IR (RQ) consumed by the Operator
// Translator: a resolved expression tree in which every
// operator application has already been reduced to a named call with a
// fixed argument list — `(name: string, args: [expr])` — ready to be
// looked up in the operator library and rendered as a dialect-specific SQL
// fragment.
//
// Grounded on original_source/prqlc/prqlc/src/sql/operators.rs, whose
// translate_operator walks exactly this shape (an Expr::FuncCall with a
// std-namespaced name) rather than a typed AST of binary/unary nodes.
package rq

import "github.com/leapstack-labs/prqlcore/pkg/pr"

// ExprKind discriminates the small set of RQ leaf/interior kinds a
// compiled query can still contain once it reaches SQL generation.
type ExprKind int

const (
	KindOperatorCall ExprKind = iota
	KindColumnRef
	KindLiteral
	KindRaw // a verbatim s-string fragment injected by the source program
)

// Expr is an RQ expression node.
type Expr struct {
	Kind ExprKind

	// OperatorCall
	Name string
	Args []*Expr

	// ColumnRef
	Table  string // "" if unqualified
	Column string

	// Literal
	Literal pr.Literal

	// Raw
	Raw string
}

// Op constructs an operator-call node, the only RQ shape the Operator
// Translator interprets as a candidate library lookup.
func Op(name string, args ...*Expr) *Expr {
	return &Expr{Kind: KindOperatorCall, Name: name, Args: args}
}

// Col constructs a (possibly table-qualified) column reference.
func Col(table, column string) *Expr {
	return &Expr{Kind: KindColumnRef, Table: table, Column: column}
}

// Lit constructs a literal leaf.
func Lit(lit pr.Literal) *Expr {
	return &Expr{Kind: KindLiteral, Literal: lit}
}

// RawExpr constructs a verbatim SQL fragment leaf, used for s-string
// content the source program already wrote as SQL.
func RawExpr(text string) *Expr {
	return &Expr{Kind: KindRaw, Raw: text}
}
