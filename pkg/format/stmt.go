package format

import (
	"strings"

	"github.com/leapstack-labs/prqlcore/pkg/ident"
	"github.com/leapstack-labs/prqlcore/pkg/pr"
	"github.com/leapstack-labs/prqlcore/pkg/writeopt"
)

// WriteStmt renders a single top-level or module-nested statement: the
// `prql` query header, `let`/main/`into` variable definitions, `type`,
// `module`, and `import` declarations, each preceded by its annotations
// and leading comments.
func WriteStmt(s *pr.Stmt, opt writeopt.Options) (string, bool) {
	if s == nil {
		return "", true
	}

	var r strings.Builder
	for _, c := range s.Comments {
		r.WriteString(opt.WriteIndent())
		r.WriteString("# ")
		r.WriteString(c.Text)
		r.WriteString("\n")
	}
	for _, ann := range s.Annotations {
		r.WriteString(opt.WriteIndent())
		r.WriteString("@")
		body, ok := WriteExpr(ann.Expr, writeopt.New(defaultLineWidth).StrongerRequiredStrength(0))
		if !ok {
			return "", false
		}
		r.WriteString(body)
		r.WriteString("\n")
	}
	r.WriteString(opt.WriteIndent())

	switch s.Kind {
	case pr.StmtQueryDef:
		body, ok := writeQueryDef(s.QueryDef)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	case pr.StmtVarDef:
		body, ok := writeVarDef(s.VarDef, opt)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	case pr.StmtTypeDef:
		body, ok := writeTypeDef(s.TypeDef, opt)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	case pr.StmtModuleDef:
		body, ok := writeModuleDef(s.ModuleDef, opt)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	case pr.StmtImportDef:
		body, ok := writeImportDef(s.ImportDef, opt)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	}

	return r.String(), true
}

// WriteProgram renders a full list of top-level statements, each on its
// own line(s), separated by a blank line.
func WriteProgram(stmts []*pr.Stmt, width int) (string, bool) {
	var r strings.Builder
	for i, s := range stmts {
		if i > 0 {
			r.WriteString("\n\n")
		}
		body, ok := WriteStmt(s, writeopt.New(width))
		if !ok {
			return "", false
		}
		r.WriteString(body)
	}
	r.WriteString("\n")
	return r.String(), true
}

func writeQueryDef(q *pr.QueryDef) (string, bool) {
	if q == nil {
		return "", true
	}
	var r strings.Builder
	r.WriteString("prql")
	if q.Version != "" {
		r.WriteString(" version:\"")
		r.WriteString(q.Version)
		r.WriteString("\"")
	}
	for _, kv := range q.Other {
		r.WriteString(" ")
		r.WriteString(kv.Key)
		r.WriteString(":")
		r.WriteString(kv.Value)
	}
	return r.String(), true
}

// writeVarDef renders a `let`/main/`into` statement. Its shape depends on
// both Kind and whether Value/Type are present:
//
//   - no value, or an explicit declared type: always `let name [<ty>] [= val]`,
//     regardless of Kind (a typed or value-less main/into still declares
//     like a let).
//   - VarDefLet with a value: `let name = val`.
//   - VarDefMain/VarDefInto with a value: no `let`/`main` keyword at all.
//     A top-level pipeline value is unwrapped and printed one stage per
//     line (the surface syntax for a query body has no visible `|`);
//     any other value shape is printed as-is. VarDefInto appends a
//     trailing `into name` line.
func writeVarDef(v *pr.VarDef, opt writeopt.Options) (string, bool) {
	if v == nil {
		return "", true
	}

	if v.Value == nil || v.Type != nil {
		return writeVarDefTyped(v, opt)
	}
	if v.Kind == pr.VarDefLet {
		return writeVarDefLet(v, opt)
	}
	return writeVarDefPipeline(v, opt)
}

func writeVarDefTyped(v *pr.VarDef, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	head := "let " + ident.WritePart(v.Name) + " "
	var typ string
	if v.Type != nil {
		ty, ok := writeBracketed(v.Type, opt.FreshContext())
		if !ok {
			return "", false
		}
		typ = ty + " "
	}
	head += typ
	if !opt.ConsumeWidth(len(head)) {
		return "", false
	}
	r.WriteString(head)

	if v.Value == nil {
		return strings.TrimRight(r.String(), " "), true
	}

	if !opt.ConsumeWidth(len("= ")) {
		return "", false
	}
	r.WriteString("= ")
	body, ok := WriteExpr(v.Value, opt)
	if !ok {
		return "", false
	}
	r.WriteString(body)
	return r.String(), true
}

func writeVarDefLet(v *pr.VarDef, opt writeopt.Options) (string, bool) {
	head := "let " + ident.WritePart(v.Name) + " = "
	if !opt.ConsumeWidth(len(head)) {
		return "", false
	}
	var r strings.Builder
	r.WriteString(head)
	body, ok := WriteExpr(v.Value, opt)
	if !ok {
		return "", false
	}
	r.WriteString(body)
	return r.String(), true
}

func writeVarDefPipeline(v *pr.VarDef, opt writeopt.Options) (string, bool) {
	var r strings.Builder
	val := v.Value
	if val.Kind == pr.KindPipeline {
		for i, stage := range val.Exprs {
			if i > 0 {
				r.WriteString("\n")
				r.WriteString(opt.WriteIndent())
			}
			body, ok := WriteExpr(stage, opt)
			if !ok {
				return "", false
			}
			r.WriteString(body)
		}
	} else {
		body, ok := WriteExpr(val, opt)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	}

	if v.Kind == pr.VarDefInto {
		r.WriteString("\n")
		r.WriteString(opt.WriteIndent())
		r.WriteString("into ")
		r.WriteString(ident.WritePart(v.Name))
	}
	return r.String(), true
}

func writeTypeDef(t *pr.TypeDef, opt writeopt.Options) (string, bool) {
	if t == nil {
		return "", true
	}
	var r strings.Builder
	r.WriteString("type ")
	r.WriteString(ident.WritePart(t.Name))
	if t.Value != nil {
		r.WriteString(" = ")
		body, ok := WriteExpr(t.Value, opt.FreshContext())
		if !ok {
			return "", false
		}
		r.WriteString(body)
	}
	return r.String(), true
}

func writeModuleDef(m *pr.ModuleDef, opt writeopt.Options) (string, bool) {
	if m == nil {
		return "", true
	}
	var r strings.Builder
	r.WriteString("module ")
	r.WriteString(ident.WritePart(m.Name))
	r.WriteString(" {\n")

	inner := opt
	inner.Indent = opt.Indent + 1
	for i, s := range m.Stmts {
		if i > 0 {
			r.WriteString("\n\n")
		}
		body, ok := WriteStmt(s, inner)
		if !ok {
			return "", false
		}
		r.WriteString(body)
	}
	if len(m.Stmts) > 0 {
		r.WriteString("\n")
	}
	r.WriteString(opt.WriteIndent())
	r.WriteString("}")
	return r.String(), true
}

func writeImportDef(imp *pr.ImportDef, opt writeopt.Options) (string, bool) {
	if imp == nil {
		return "", true
	}
	var r strings.Builder
	r.WriteString("import ")
	if imp.Alias != "" {
		r.WriteString(ident.WritePart(imp.Alias))
		r.WriteString(" = ")
	}
	body, ok := WriteExpr(imp.Path, opt.FreshContext())
	if !ok {
		return "", false
	}
	r.WriteString(body)
	return r.String(), true
}
