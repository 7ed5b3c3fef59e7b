// Package pr is the parsed, pre-semantic-resolution representation (PR) of
// the source language: the data model the Statement Writer, Expression
// Writer, and Comment Attacher all operate on. Nothing in this package
// parses source text — it is the shape an external parser is expected to
// produce.
package pr

import "github.com/leapstack-labs/prqlcore/pkg/token"

// BinOp is a binary operator symbol. Its binding strength and
// associativity are fixed and implemented in pkg/precedence.
type BinOp int

const (
	OpPow BinOp = iota
	OpMul
	OpDivInt
	OpDivFloat
	OpMod
	OpAdd
	OpSub
	OpEq
	OpNe
	OpGt
	OpLt
	OpGte
	OpLte
	OpRegexSearch
	OpCoalesce
	OpAnd
	OpOr
)

// String renders the operator's surface-syntax symbol.
func (op BinOp) String() string {
	switch op {
	case OpPow:
		return "**"
	case OpMul:
		return "*"
	case OpDivInt:
		return "/"
	case OpDivFloat:
		return "/."
	case OpMod:
		return "%"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGte:
		return ">="
	case OpLte:
		return "<="
	case OpRegexSearch:
		return "~="
	case OpCoalesce:
		return "??"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// UnOp is a unary operator symbol.
type UnOp int

const (
	UnNeg UnOp = iota // unary "-"
	UnAdd             // unary "+"
	UnNot             // "!"
	UnEqSelf          // "==" used as a unary self-equality marker (join shorthand)
)

func (op UnOp) String() string {
	switch op {
	case UnNeg:
		return "-"
	case UnAdd:
		return "+"
	case UnNot:
		return "!"
	case UnEqSelf:
		return "=="
	default:
		return "?"
	}
}

// IndirectionKind selects how an Indirection expression's field is named.
type IndirectionKind int

const (
	IndirName IndirectionKind = iota
	IndirPosition
	IndirStar
)

// ExprKind discriminates the Expr variants.
type ExprKind int

const (
	KindIdent ExprKind = iota
	KindIndirection
	KindPipeline
	KindTuple
	KindArray
	KindRange
	KindBinary
	KindUnary
	KindFuncCall
	KindFuncLit
	KindSString
	KindFString
	KindLiteral
	KindCase
	KindParam
	KindInternal
)

// InterpolatePart is one piece of an s-string/f-string: either a literal
// text fragment or an embedded expression with an optional required
// binding strength (the `{x:20}` format-spec suffix, used by the operator
// translator's template substitution to decide when an embedded argument
// needs extra parens).
type InterpolatePart struct {
	IsExpr bool
	Text   string // when !IsExpr
	Expr   *Expr  // when IsExpr
	Format *int   // optional required binding strength
}

// SwitchCase is one `cond => value` arm of a Case expression.
type SwitchCase struct {
	Condition *Expr
	Value     *Expr
}

// FuncParam is a positional or named parameter of a function literal.
type FuncParam struct {
	Name    string
	Type    *Expr // optional declared type, rendered as <ty>
	Default *Expr // present only for named params
}

// GenericParam is a `<T: dom1 | dom2>` generic type parameter.
type GenericParam struct {
	Name   string
	Domain []*Expr
}

// Expr is a PR expression node. Only one of the Kind-tagged fields below is
// populated, selected by Kind.
type Expr struct {
	Kind ExprKind

	// Common to all kinds.
	Alias    string // "" if no alias
	Span     *token.Span
	Comments []token.Token // comments following this expression, attached by the Comment Attacher; comments before it are not attached here

	// Ident
	Ident string

	// Indirection
	Base       *Expr
	FieldKind  IndirectionKind
	FieldName  string
	FieldIndex int

	// Pipeline / Tuple / Array
	Exprs []*Expr

	// Range
	RangeStart *Expr
	RangeEnd   *Expr

	// Binary
	BinOp       BinOp
	Left, Right *Expr

	// Unary
	UnOp     UnOp
	Operand  *Expr

	// FuncCall
	Callee     *Expr
	Args       []*Expr
	NamedArgs  []NamedArg

	// FuncLit
	GenericParams []GenericParam
	Params        []FuncParam
	NamedParams   []FuncParam
	ReturnType    *Expr
	Body          *Expr

	// SString / FString
	Parts []InterpolatePart

	// Literal
	Literal Literal

	// Case
	Cases []SwitchCase

	// Param
	ParamID int

	// Internal
	InternalName string
}

// NamedArg is a `name:value` function-call argument.
type NamedArg struct {
	Name  string
	Value *Expr
}

// LiteralKind discriminates Literal values.
type LiteralKind int

const (
	LitInteger LiteralKind = iota
	LitFloat
	LitString
	LitBoolean
	LitNull
	LitDate
	LitTime
	LitTimestamp
	LitValueAndUnit // e.g. "10days"
)

// Literal is the canonical textual form of a scalar value, plus enough
// structure to re-derive it (so the formatter doesn't need to re-parse).
type Literal struct {
	Kind  LiteralKind
	Text  string // canonical textual form, e.g. "5", "true", already escaped for LitString's *contents* (not yet quoted)
	Value bool   // used when Kind == LitBoolean
}
