// Package comments is the Comment Attacher: it walks a parsed PR tree in
// source order against a reversed stack of aesthetic tokens (comments and
// newlines) and attaches each comment to the nearest preceding
// expression/statement span. Attachment walks into every Expr
// kind, not just the statement level, so a comment trailing any
// subexpression survives a reformat.
package comments

import (
	"github.com/leapstack-labs/prqlcore/pkg/pr"
	"github.com/leapstack-labs/prqlcore/pkg/token"
)

// Attach assigns each comment token in stream to the PR node whose span it
// is adjacent to, per the 0-or-1-newline separation rule (SPEC_FULL.md
// Open Question decision): a comment attaches as trailing to the nearest
// preceding node if they're on the same line or separated by exactly one
// newline, otherwise it is returned unattached for the caller to render
// (format.Program appends such comments at the end of its output).
func Attach(stmts []*pr.Stmt, stream token.Stream) []token.Token {
	var comments []token.Token
	for _, t := range stream {
		if t.Kind == token.KindComment {
			comments = append(comments, t)
		}
	}
	if len(comments) == 0 {
		return nil
	}

	a := &attacher{comments: comments, used: make([]bool, len(comments))}
	for _, s := range stmts {
		a.walkStmt(s)
	}

	var leftover []token.Token
	for i, c := range a.comments {
		if !a.used[i] {
			leftover = append(leftover, c)
		}
	}
	return leftover
}

type attacher struct {
	comments []token.Token
	used     []bool
}

func (a *attacher) walkStmt(s *pr.Stmt) {
	if s == nil {
		return
	}
	s.Comments = append(s.Comments, a.collect(s.Span)...)
	for _, ann := range s.Annotations {
		a.walkExpr(ann.Expr)
	}
	switch s.Kind {
	case pr.StmtVarDef:
		if s.VarDef != nil {
			a.walkExpr(s.VarDef.Type)
			a.walkExpr(s.VarDef.Value)
		}
	case pr.StmtTypeDef:
		if s.TypeDef != nil {
			a.walkExpr(s.TypeDef.Value)
		}
	case pr.StmtModuleDef:
		if s.ModuleDef != nil {
			for _, inner := range s.ModuleDef.Stmts {
				a.walkStmt(inner)
			}
		}
	case pr.StmtImportDef:
		if s.ImportDef != nil {
			a.walkExpr(s.ImportDef.Path)
		}
	}
}

func (a *attacher) walkExpr(e *pr.Expr) {
	if e == nil {
		return
	}
	e.Comments = append(e.Comments, a.collect(e.Span)...)

	switch e.Kind {
	case pr.KindIndirection:
		a.walkExpr(e.Base)
	case pr.KindPipeline, pr.KindTuple, pr.KindArray:
		for _, c := range e.Exprs {
			a.walkExpr(c)
		}
	case pr.KindRange:
		a.walkExpr(e.RangeStart)
		a.walkExpr(e.RangeEnd)
	case pr.KindBinary:
		a.walkExpr(e.Left)
		a.walkExpr(e.Right)
	case pr.KindUnary:
		a.walkExpr(e.Operand)
	case pr.KindFuncCall:
		a.walkExpr(e.Callee)
		for _, arg := range e.Args {
			a.walkExpr(arg)
		}
		for _, na := range e.NamedArgs {
			a.walkExpr(na.Value)
		}
	case pr.KindFuncLit:
		for _, p := range e.Params {
			a.walkExpr(p.Type)
		}
		for _, p := range e.NamedParams {
			a.walkExpr(p.Default)
		}
		a.walkExpr(e.ReturnType)
		a.walkExpr(e.Body)
	case pr.KindSString, pr.KindFString:
		for _, p := range e.Parts {
			if p.IsExpr {
				a.walkExpr(p.Expr)
			}
		}
	case pr.KindCase:
		for _, c := range e.Cases {
			a.walkExpr(c.Condition)
			a.walkExpr(c.Value)
		}
	}
}

// collect returns, and marks used, every unattached comment adjacent to
// span per the 0-or-1-newline rule: on the same line as the node's end, or
// separated from it by exactly one newline.
func (a *attacher) collect(span *token.Span) []token.Token {
	if span == nil || !span.IsValid() {
		return nil
	}
	var out []token.Token
	for i, c := range a.comments {
		if a.used[i] || !c.Span.IsValid() {
			continue
		}
		if c.Span.Start.Offset < span.End.Offset {
			continue
		}
		lineGap := c.Span.Start.Line - span.End.Line
		if lineGap == 0 || lineGap == 1 {
			a.used[i] = true
			out = append(out, c)
		}
	}
	return out
}
