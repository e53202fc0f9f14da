// Package scalasrc is the bundled reference front-end: a small scanner that
// turns Scala source into the read-only tree snapshot the organizer
// consumes, plus a conservative usage analyzer and a text-model symbol
// resolver. It is deliberately not a full parser; unparseable import lines
// are carried verbatim and left unchanged by the organizer.
package scalasrc

import (
	"strings"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
)

// Parse builds the tree snapshot for one file. Braces open nested scopes;
// class, object and trait bodies become ClassBody scopes, def bodies and
// plain blocks FunctionBody scopes, and braced packages PackageLevel scopes.
// Scopes that own no imports anywhere beneath them are pruned.
func Parse(file, text string) (*source.Tree, error) {
	p := &parser{text: text}
	root := &source.Scope{
		Kind: source.PackageLevel,
		Span: imports.Span{Start: 0, End: len(text)},
	}
	p.stack = []*source.Scope{root}
	p.run()

	tree := &source.Tree{File: file, Text: text, Root: root}
	prune(root)
	return tree, nil
}

type parser struct {
	text  string
	pos   int
	stack []*source.Scope

	// pending is the scope kind the next opening brace will take, set by
	// the most recent class/object/trait, def or package keyword.
	pending    source.ScopeKind
	pendingSet bool
}

func (p *parser) current() *source.Scope {
	return p.stack[len(p.stack)-1]
}

func (p *parser) run() {
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch {
		case c == '/' && p.peek(1) == '/':
			p.skipLineComment()
		case c == '/' && p.peek(1) == '*':
			p.skipBlockComment()
		case c == '"':
			p.skipString()
		case c == '\'':
			p.skipCharLiteral()
		case c == '{':
			p.openScope()
		case c == '}':
			p.closeScope()
		case c == ';':
			p.pendingSet = false
			p.pos++
		case isIdentStart(c):
			word := p.scanIdent()
			switch word {
			case "import":
				p.parseImport(p.pos - len(word))
			case "class", "object", "trait", "enum":
				p.pending, p.pendingSet = source.ClassBody, true
			case "def":
				p.pending, p.pendingSet = source.FunctionBody, true
			case "package":
				p.pending, p.pendingSet = source.PackageLevel, true
			}
		default:
			p.pos++
		}
	}
	// Close any scopes left open by unbalanced braces at the end of input.
	for len(p.stack) > 1 {
		p.current().Span.End = len(p.text)
		p.stack = p.stack[:len(p.stack)-1]
	}
}

func (p *parser) peek(off int) byte {
	if p.pos+off >= len(p.text) {
		return 0
	}
	return p.text[p.pos+off]
}

func (p *parser) openScope() {
	kind := source.FunctionBody // a plain block can host local imports
	if p.pendingSet {
		kind = p.pending
		p.pendingSet = false
	}
	scope := &source.Scope{
		Kind: kind,
		Span: imports.Span{Start: p.pos, End: len(p.text)},
	}
	parent := p.current()
	parent.Children = append(parent.Children, scope)
	p.stack = append(p.stack, scope)
	p.pos++
}

func (p *parser) closeScope() {
	if len(p.stack) > 1 {
		p.current().Span.End = p.pos + 1
		p.stack = p.stack[:len(p.stack)-1]
	}
	p.pendingSet = false
	p.pos++
}

func (p *parser) skipLineComment() {
	for p.pos < len(p.text) && p.text[p.pos] != '\n' {
		p.pos++
	}
}

func (p *parser) skipBlockComment() {
	p.pos += 2
	depth := 1
	for p.pos < len(p.text) && depth > 0 {
		if p.text[p.pos] == '/' && p.peek(1) == '*' {
			depth++
			p.pos += 2
			continue
		}
		if p.text[p.pos] == '*' && p.peek(1) == '/' {
			depth--
			p.pos += 2
			continue
		}
		p.pos++
	}
}

func (p *parser) skipString() {
	if p.peek(1) == '"' && p.peek(2) == '"' {
		p.pos += 3
		for p.pos < len(p.text) {
			if p.text[p.pos] == '"' && p.peek(1) == '"' && p.peek(2) == '"' {
				p.pos += 3
				return
			}
			p.pos++
		}
		return
	}
	p.pos++
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '\\':
			p.pos += 2
		case '"', '\n':
			p.pos++
			return
		default:
			p.pos++
		}
	}
}

func (p *parser) skipCharLiteral() {
	// 'a' or '\n' are char literals; anything else (a symbol literal or a
	// quote in an identifier position) consumes just the quote.
	if p.peek(1) == '\\' {
		for off := 2; off < 6; off++ {
			if p.peek(off) == '\'' {
				p.pos += off + 1
				return
			}
		}
	} else if p.peek(2) == '\'' {
		p.pos += 3
		return
	}
	p.pos++
}

func (p *parser) scanIdent() string {
	start := p.pos
	for p.pos < len(p.text) && isIdentPart(p.text[p.pos]) {
		p.pos++
	}
	// Keywords only count at a word boundary.
	if start > 0 && isIdentPart(p.text[start-1]) {
		return ""
	}
	return p.text[start:p.pos]
}

// parseImport consumes one import clause starting at the given offset of the
// "import" keyword and attaches the parsed declarations to the current scope.
func (p *parser) parseImport(start int) {
	clauseEnd, segments := p.scanImportClause()
	owner := p.current()
	for i, seg := range segments {
		text := strings.TrimSpace(p.text[seg.Start:seg.End])
		if text == "" {
			continue
		}
		decl := parseImportExpression(text)
		span := seg
		if i == 0 {
			span.Start = start
		}
		decl.Span = span
		decl.Text = strings.TrimSpace(p.text[span.Start:span.End])
		if i > 0 {
			// Later expressions of a comma clause do not carry the keyword
			// in source; re-rendering them verbatim still needs it.
			decl.Text = "import " + decl.Text
		}
		owner.Imports = append(owner.Imports, decl)
	}
	p.pos = clauseEnd
}

// scanImportClause collects the comma-separated import expressions following
// the keyword. The clause ends at a newline or semicolon outside selector
// braces; newlines inside a selector block are allowed.
func (p *parser) scanImportClause() (int, []imports.Span) {
	depth := 0
	segStart := p.skipSpacesFrom(p.pos)
	var segments []imports.Span
	i := segStart
	for i < len(p.text) {
		c := p.text[i]
		switch {
		case c == '/' && i+1 < len(p.text) && p.text[i+1] == '/':
			segments = append(segments, imports.Span{Start: segStart, End: trimEnd(p.text, segStart, i)})
			return i, segments
		case c == '{':
			depth++
		case c == '}':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			segments = append(segments, imports.Span{Start: segStart, End: trimEnd(p.text, segStart, i)})
			segStart = p.skipSpacesFrom(i + 1)
			i = segStart
			continue
		case (c == '\n' || c == ';') && depth == 0:
			segments = append(segments, imports.Span{Start: segStart, End: trimEnd(p.text, segStart, i)})
			return i, segments
		}
		i++
	}
	segments = append(segments, imports.Span{Start: segStart, End: trimEnd(p.text, segStart, i)})
	return i, segments
}

func (p *parser) skipSpacesFrom(i int) int {
	for i < len(p.text) && (p.text[i] == ' ' || p.text[i] == '\t') {
		i++
	}
	return i
}

func trimEnd(text string, start, end int) int {
	for end > start && (text[end-1] == ' ' || text[end-1] == '\t' || text[end-1] == '\r') {
		end--
	}
	return end
}

// parseImportExpression turns one import expression into a declaration.
// Shapes handled: a.b.C, a.b._, a.b.{C, D => E, _}. Anything else keeps a
// best-effort qualifier and its verbatim text, so later passes carry it
// through unchanged.
func parseImportExpression(text string) imports.Declaration {
	if i := strings.IndexByte(text, '{'); i >= 0 {
		qualifier := strings.TrimSuffix(strings.TrimSpace(text[:i]), ".")
		inner := text[i+1:]
		if j := strings.LastIndexByte(inner, '}'); j >= 0 {
			inner = inner[:j]
		}
		return imports.Declaration{
			Qualifier: splitQualifier(qualifier),
			Selectors: parseSelectors(inner),
		}
	}
	segments := splitQualifier(text)
	if len(segments) < 2 {
		// Not a well-formed member import; carry it verbatim.
		return imports.Declaration{
			Qualifier: segments,
			Selectors: []imports.Selector{{Name: lastOf(segments)}},
		}
	}
	last := segments[len(segments)-1]
	qualifier := segments[:len(segments)-1]
	if last == "_" {
		return imports.Declaration{
			Qualifier: qualifier,
			Selectors: []imports.Selector{{Wildcard: true}},
		}
	}
	return imports.Declaration{
		Qualifier: qualifier,
		Selectors: []imports.Selector{{Name: last}},
	}
}

func parseSelectors(inner string) []imports.Selector {
	var out []imports.Selector
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "_" {
			out = append(out, imports.Selector{Wildcard: true})
			continue
		}
		if name, rename, ok := strings.Cut(part, "=>"); ok {
			out = append(out, imports.Selector{
				Name:   strings.TrimSpace(name),
				Rename: strings.TrimSpace(rename),
			})
			continue
		}
		out = append(out, imports.Selector{Name: part})
	}
	return out
}

func splitQualifier(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ".")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func lastOf(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// prune drops scopes that own no imports and have no import-owning
// descendants, keeping the snapshot small.
func prune(s *source.Scope) bool {
	var kept []*source.Scope
	for _, c := range s.Children {
		if prune(c) {
			kept = append(kept, c)
		}
	}
	s.Children = kept
	return len(s.Imports) > 0 || len(kept) > 0
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
