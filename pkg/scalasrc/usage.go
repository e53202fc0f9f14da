package scalasrc

import (
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/strategy"
)

// scalaKeywords never count as referenced names.
var scalaKeywords = map[string]bool{
	"abstract": true, "case": true, "catch": true, "class": true, "def": true,
	"do": true, "else": true, "enum": true, "extends": true, "false": true,
	"final": true, "finally": true, "for": true, "forSome": true, "if": true,
	"implicit": true, "import": true, "lazy": true, "match": true, "new": true,
	"null": true, "object": true, "override": true, "package": true,
	"private": true, "protected": true, "return": true, "sealed": true,
	"super": true, "this": true, "throw": true, "trait": true, "true": true,
	"try": true, "type": true, "val": true, "var": true, "while": true,
	"with": true, "yield": true,
}

// UsageScanner is the reference usage analyzer: it harvests the identifiers
// a subtree mentions outside of its import clauses, comments and strings,
// and reports a declared import as needed when its local name appears. It is
// deliberately conservative; a name mentioned anywhere in the subtree counts
// as used.
type UsageScanner struct {
	// Resolver supplies member sets so wildcard imports can be narrowed to
	// the members actually referenced. Optional.
	Resolver *Resolver
}

func (u UsageScanner) NeededImports(tree *source.Tree, scope *source.Scope) ([]strategy.Need, error) {
	if tree == nil || scope == nil {
		return nil, nil
	}
	used := referencedIdentifiers(tree, scope)

	var needs []strategy.Need
	seen := make(map[string]bool)
	add := func(qualifier []string, name string) {
		key := joinDots(qualifier) + "#" + name
		if seen[key] {
			return
		}
		seen[key] = true
		needs = append(needs, strategy.Need{
			Qualifier: append([]string(nil), qualifier...),
			Name:      name,
		})
	}

	scope.Walk(func(s *source.Scope) bool {
		for _, d := range s.Imports {
			for _, sel := range d.Selectors {
				if sel.Wildcard {
					if u.Resolver == nil {
						continue
					}
					for _, m := range u.Resolver.Members(d.Qualifier) {
						if used[m] {
							add(d.Qualifier, m)
						}
					}
					continue
				}
				if used[sel.LocalName()] {
					add(d.Qualifier, sel.Name)
				}
			}
		}
		return true
	})
	return needs, nil
}

// referencedIdentifiers collects every identifier in the scope's span,
// skipping comments, strings, and the text of import clauses.
func referencedIdentifiers(tree *source.Tree, scope *source.Scope) map[string]bool {
	skip := importSpans(scope)
	text := tree.Text
	end := scope.Span.End
	if end > len(text) {
		end = len(text)
	}

	used := make(map[string]bool)
	p := &parser{text: text, pos: scope.Span.Start}
	p.stack = []*source.Scope{{}}
	for p.pos < end {
		c := text[p.pos]
		switch {
		case inSpans(skip, p.pos):
			p.pos++
		case c == '/' && p.peek(1) == '/':
			p.skipLineComment()
		case c == '/' && p.peek(1) == '*':
			p.skipBlockComment()
		case c == '"':
			p.skipString()
		case c == '\'':
			p.skipCharLiteral()
		case isIdentStart(c):
			word := p.scanIdent()
			if word != "" && !scalaKeywords[word] {
				used[word] = true
			}
		default:
			p.pos++
		}
	}
	return used
}

func importSpans(scope *source.Scope) []imports.Span {
	var spans []imports.Span
	scope.Walk(func(s *source.Scope) bool {
		for _, d := range s.Imports {
			if d.Span.IsValid() {
				spans = append(spans, d.Span)
			}
		}
		return true
	})
	return spans
}

func inSpans(spans []imports.Span, pos int) bool {
	for _, s := range spans {
		if pos >= s.Start && pos < s.End {
			return true
		}
	}
	return false
}

func joinDots(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
