// Package source defines the read-only tree snapshot the organizer consumes.
// A front-end produces one Tree per invocation; the organizer never mutates
// it, only reads spans and owned declarations from it.
package source

import (
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// ScopeKind classifies a lexical scope able to host its own imports.
type ScopeKind int

const (
	PackageLevel ScopeKind = iota
	ClassBody
	FunctionBody
)

func (k ScopeKind) String() string {
	switch k {
	case PackageLevel:
		return "PackageLevel"
	case ClassBody:
		return "ClassBody"
	case FunctionBody:
		return "FunctionBody"
	default:
		return "Unknown"
	}
}

// Tree is an immutable snapshot of one source file.
type Tree struct {
	File string
	Text string
	Root *Scope
}

// Scope is one lexical scope in the snapshot, with the import declarations
// it owns directly and its nested import-hosting scopes in document order.
type Scope struct {
	Kind     ScopeKind
	Span     imports.Span
	Imports  []imports.Declaration
	Children []*Scope
}

// Walk visits the scope and its descendants in document order, stopping a
// branch when fn returns false.
func (s *Scope) Walk(fn func(*Scope) bool) {
	if s == nil || !fn(s) {
		return
	}
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// Innermost returns the deepest scope whose span contains the given span,
// or nil when the selection lies outside the tree.
func (s *Scope) Innermost(sel imports.Span) *Scope {
	if s == nil || !s.Span.Contains(sel) {
		return nil
	}
	for _, c := range s.Children {
		if inner := c.Innermost(sel); inner != nil {
			return inner
		}
	}
	return s
}
