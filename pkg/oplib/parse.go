package oplib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/prqlcore/pkg/precedence"
)

// Definition is one `let name = func p1 p2 -> s"..."` entry from the
// operator library source.
type Definition struct {
	Name     string
	Params   []string
	Template []TemplatePart
	Strength uint8 // the binding strength of this operator's own output syntax
	Variadic bool  // declared with a trailing `variadic` keyword; see parseDef
}

// AcceptsNull reports whether this operator has defined null-handling
// semantics (only coalesce(l, r) does — every other entry in
// operators.prql is a plain template substitution with no NULL case).
func (d *Definition) AcceptsNull() bool {
	return d.Name == "coalesce"
}

// TemplatePart is one piece of a definition's s-string body.
type TemplatePart struct {
	IsParam          bool
	Text             string // when !IsParam
	Param            string // when IsParam
	RequiredStrength *uint8 // optional "{x:N}" format spec
}

// parseSource parses the embedded mini-language described at the top of
// operators.prql: root-level `let` definitions plus named `module { }`
// blocks of dialect-specific overrides. It is deliberately small and
// line-oriented — this grammar is authored by us, not by an end user, so
// it need not handle the full surface syntax this module's own formatter
// targets.
func parseSource(src string) (map[string]map[string]*Definition, map[string]*Definition, error) {
	root := make(map[string]*Definition)
	modules := make(map[string]map[string]*Definition)

	lines := strings.Split(src, "\n")
	var currentModule string
	var currentDefs map[string]*Definition = root
	pendingStrength := -1

	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "@{") && strings.HasSuffix(line, "}"):
			n, err := parseStrengthAnnotation(line)
			if err != nil {
				return nil, nil, fmt.Errorf("oplib: line %d: %w", lineNo+1, err)
			}
			pendingStrength = n

		case strings.HasPrefix(line, "module "):
			name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "module "), "{"))
			if name == "" {
				return nil, nil, fmt.Errorf("oplib: line %d: malformed module header %q", lineNo+1, raw)
			}
			currentModule = name
			currentDefs = make(map[string]*Definition)
			modules[currentModule] = currentDefs

		case line == "}":
			currentModule = ""
			currentDefs = root

		case strings.HasPrefix(line, "let "):
			def, err := parseDef(line)
			if err != nil {
				return nil, nil, fmt.Errorf("oplib: line %d: %w", lineNo+1, err)
			}
			if pendingStrength >= 0 {
				def.Strength = uint8(pendingStrength)
				pendingStrength = -1
			} else {
				def.Strength = precedence.StrengthAtomic
			}
			currentDefs[def.Name] = def

		default:
			return nil, nil, fmt.Errorf("oplib: line %d: unrecognized statement %q", lineNo+1, raw)
		}
	}

	return modules, root, nil
}

// parseDef parses a single `let name = func p1 p2 -> s"template" [variadic]`
// line. The optional trailing `variadic` keyword (only valid on a
// definition declaring exactly 2 params) marks the operator as foldable
// over any call with 2 or more arguments.
func parseDef(line string) (*Definition, error) {
	body := strings.TrimPrefix(line, "let ")
	name, rest, ok := cut(body, "=")
	if !ok {
		return nil, fmt.Errorf("missing '=' in %q", line)
	}
	name = strings.TrimSpace(name)
	rest = strings.TrimSpace(rest)

	rest = strings.TrimPrefix(rest, "func ")
	paramsPart, tmplPart, ok := cut(rest, "->")
	if !ok {
		return nil, fmt.Errorf("missing '->' in definition of %q", name)
	}
	params := strings.Fields(strings.TrimSpace(paramsPart))

	tmplPart = strings.TrimSpace(tmplPart)
	if !strings.HasPrefix(tmplPart, `s"`) {
		return nil, fmt.Errorf("body of %q must be an s-string", name)
	}
	closeIdx := strings.LastIndex(tmplPart, `"`)
	if closeIdx <= 1 {
		return nil, fmt.Errorf("body of %q must be an s-string", name)
	}
	body2 := tmplPart[2:closeIdx]
	modifier := strings.TrimSpace(tmplPart[closeIdx+1:])

	var variadic bool
	switch modifier {
	case "":
	case "variadic":
		variadic = true
		if len(params) != 2 {
			return nil, fmt.Errorf("variadic definition %q must declare exactly 2 params", name)
		}
	default:
		return nil, fmt.Errorf("unrecognized modifier %q in definition of %q", modifier, name)
	}

	parts, err := parseTemplate(body2, params)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", name, err)
	}

	return &Definition{Name: name, Params: params, Template: parts, Variadic: variadic}, nil
}

func parseTemplate(s string, params []string) ([]TemplatePart, error) {
	paramSet := make(map[string]bool, len(params))
	for _, p := range params {
		paramSet[p] = true
	}

	var parts []TemplatePart
	var text strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '{' {
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated interpolation in template %q", s)
			}
			if text.Len() > 0 {
				parts = append(parts, TemplatePart{Text: text.String()})
				text.Reset()
			}
			inner := s[i+1 : i+end]
			name, strengthStr, hasStrength := cut(inner, ":")
			name = strings.TrimSpace(name)
			if !paramSet[name] {
				return nil, fmt.Errorf("unknown parameter %q in template %q", name, s)
			}
			part := TemplatePart{IsParam: true, Param: name}
			if hasStrength {
				n, err := strconv.Atoi(strings.TrimSpace(strengthStr))
				if err != nil {
					return nil, fmt.Errorf("bad binding strength %q for %q", strengthStr, name)
				}
				u := uint8(n)
				part.RequiredStrength = &u
			}
			parts = append(parts, part)
			i += end + 1
			continue
		}
		text.WriteByte(s[i])
		i++
	}
	if text.Len() > 0 {
		parts = append(parts, TemplatePart{Text: text.String()})
	}
	return parts, nil
}

// parseStrengthAnnotation parses an `@{strength=N}` line preceding a
// `let`, overriding the default atomic strength.
func parseStrengthAnnotation(line string) (int, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "@{"), "}")
	key, val, ok := cut(inner, "=")
	if !ok || strings.TrimSpace(key) != "strength" {
		return 0, fmt.Errorf("unrecognized annotation %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("bad strength value in %q: %w", line, err)
	}
	return n, nil
}

// cut splits s on the first occurrence of sep, reporting whether sep was found.
func cut(s, sep string) (before, after string, found bool) {
	i := strings.Index(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
