// Package region finds every lexical scope that owns import declarations and
// reconciles the text edits produced for nested scopes.
package region

import (
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
)

// Region is one import-owning scope, produced fresh per invocation from the
// read-only snapshot and discarded once edits are emitted. The parent
// back-reference is an index into the extracted slice, never an owning
// pointer.
type Region struct {
	Kind    source.ScopeKind
	Span    imports.Span // hull of the owned import declarations
	Imports []imports.Declaration
	Parent  int // index of the enclosing region, -1 for the outermost
	Depth   int

	// Scope is a non-owning reference into the snapshot, used to run the
	// usage analyzer over exactly this region's subtree.
	Scope *source.Scope
}

// Extract walks the tree once and returns every scope owning its own
// imports, in document order. An invalid selection span means the whole
// file; otherwise extraction starts at the innermost scope containing the
// selection. When organizeLocal is false only the root of the selected
// subtree is considered.
func Extract(tree *source.Tree, selection imports.Span, organizeLocal bool) []Region {
	if tree == nil || tree.Root == nil {
		return nil
	}
	start := tree.Root
	if selection.IsValid() {
		if inner := tree.Root.Innermost(selection); inner != nil {
			start = inner
		}
	}

	var regions []Region
	parentOf := make(map[*source.Scope]int)

	var walk func(s *source.Scope, parent, depth int)
	walk = func(s *source.Scope, parent, depth int) {
		self := parent
		if len(s.Imports) > 0 {
			region := Region{
				Kind:    s.Kind,
				Span:    importHull(s.Imports),
				Imports: cloneAll(s.Imports),
				Parent:  parent,
				Depth:   depth,
				Scope:   s,
			}
			self = len(regions)
			regions = append(regions, region)
			parentOf[s] = self
		}
		if !organizeLocal {
			return
		}
		for _, c := range s.Children {
			walk(c, self, depth+1)
		}
	}
	walk(start, -1, 0)
	return regions
}

func importHull(decls []imports.Declaration) imports.Span {
	hull := imports.NoSpan
	for _, d := range decls {
		if !d.Span.IsValid() {
			continue
		}
		if !hull.IsValid() {
			hull = d.Span
			continue
		}
		if d.Span.Start < hull.Start {
			hull.Start = d.Span.Start
		}
		if d.Span.End > hull.End {
			hull.End = d.Span.End
		}
	}
	return hull
}

func cloneAll(decls []imports.Declaration) []imports.Declaration {
	out := make([]imports.Declaration, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Clone())
	}
	return out
}
