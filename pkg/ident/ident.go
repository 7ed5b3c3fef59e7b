// Package ident is the Ident Escaper: decides whether an
// identifier part can be printed bare or needs backtick-quoting.
//
// Grounded on original_source/prqlc/prqlc/src/codegen/ast.rs's
// VALID_PRQL_IDENT regex and KEYWORDS set, which this reproduces exactly.
package ident

import "regexp"

// validIdent matches a bare identifier part: `*` on its own, or a
// letter/underscore/`$` followed by letters/digits/underscore/`$`.
var validIdent = regexp.MustCompile(`^(?:\*|[A-Za-z_$][A-Za-z0-9_$]*)$`)

// keywords are reserved words that must always be backtick-quoted even
// though they'd otherwise match validIdent.
var keywords = map[string]struct{}{
	"let":      {},
	"into":     {},
	"case":     {},
	"prql":     {},
	"type":     {},
	"module":   {},
	"internal": {},
	"func":     {},
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// WritePart renders a single identifier part: bare if it matches the ident
// grammar and isn't a keyword, otherwise backtick-delimited with any
// literal backticks escaped by doubling.
func WritePart(s string) string {
	if validIdent.MatchString(s) && !IsKeyword(s) {
		return s
	}
	return "`" + escapeBackticks(s) + "`"
}

func escapeBackticks(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			out = append(out, '`', '`')
		} else {
			out = append(out, s[i])
		}
	}
	return string(out)
}
