// Package strategy builds the strategy-specific prefix of the reorganization
// pipeline from one of the three dependency-resolution modes.
package strategy

import (
	"fmt"
	"strings"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/pipeline"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/std"
)

// Strategy selects how existing declarations are reconciled with the set of
// imports a scope actually needs.
type Strategy int

const (
	// RecomputeAndModify keeps existing declarations and filters their
	// selectors against the recomputed needed set. It is the zero value,
	// so an unset Strategy never discards declarations wholesale.
	RecomputeAndModify Strategy = iota

	// FullyRecompute discards existing declarations and rebuilds the needed
	// set from scratch. Callers must ensure the subtree has no unresolved
	// references; violating that silently yields an incomplete set.
	FullyRecompute

	// RemoveUnneeded adds requested declarations, then filters existing
	// selectors to the referenced ones, tombstoning emptied declarations.
	RemoveUnneeded
)

func (s Strategy) String() string {
	switch s {
	case FullyRecompute:
		return "recompute"
	case RecomputeAndModify:
		return "modify"
	case RemoveUnneeded:
		return "remove-unneeded"
	default:
		return "unknown"
	}
}

// Parse maps a CLI or config spelling to a Strategy.
func Parse(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recompute", "fully-recompute":
		return FullyRecompute, nil
	case "modify", "recompute-and-modify", "":
		return RecomputeAndModify, nil
	case "remove-unneeded", "remove":
		return RemoveUnneeded, nil
	default:
		return 0, fmt.Errorf("unknown dependency strategy %q", s)
	}
}

// Need is one (qualifier, name) pair the usage analyzer reports as
// referenced by a subtree.
type Need struct {
	Qualifier []string
	Name      string
}

// QualifierText returns the dotted qualifier of the need.
func (n Need) QualifierText() string {
	return strings.Join(n.Qualifier, ".")
}

// UsageAnalyzer computes which imported names a subtree references. Calls
// are treated as blocking and cacheable; see CachedAnalyzer.
type UsageAnalyzer interface {
	NeededImports(tree *source.Tree, scope *source.Scope) ([]Need, error)
}

// neededSet indexes needs by qualifier text.
type neededSet map[string]map[string]bool

func indexNeeds(needs []Need) neededSet {
	set := make(neededSet, len(needs))
	for _, n := range needs {
		q := n.QualifierText()
		if set[q] == nil {
			set[q] = make(map[string]bool)
		}
		set[q][n.Name] = true
	}
	return set
}

func (s neededSet) anyFor(qualifier string) bool {
	return len(s[qualifier]) > 0
}

func (s neededSet) contains(qualifier, name string) bool {
	return s[qualifier][name]
}

// Resolver builds the strategy passes for one region.
type Resolver struct {
	Strategy Strategy
	Analyzer UsageAnalyzer
	Symbols  imports.Resolver

	// ToAdd lists explicitly requested new imports. They are injected only
	// at the top-level region and are immune to removal in the same run.
	ToAdd []Need
}

// Passes returns the strategy-specific prefix of the pipeline for the given
// scope. Additions are included only when topLevel is set.
func (r *Resolver) Passes(tree *source.Tree, scope *source.Scope, topLevel bool) ([]pipeline.Participant, error) {
	needs, err := r.Analyzer.NeededImports(tree, scope)
	if err != nil {
		return nil, err
	}
	set := indexNeeds(needs)

	var toAdd []Need
	if topLevel {
		toAdd = r.ToAdd
	}

	symbols := r.Symbols
	if symbols == nil {
		symbols = imports.TextResolver{}
	}

	switch r.Strategy {
	case FullyRecompute:
		return []pipeline.Participant{
			recomputePass{needs: needs, toAdd: toAdd},
			pipeline.SortImports{},
		}, nil
	case RecomputeAndModify:
		return []pipeline.Participant{
			modifyPass{set: set, symbols: symbols, toAdd: toAdd},
		}, nil
	case RemoveUnneeded:
		return []pipeline.Participant{
			addImportsPass{toAdd: toAdd},
			pipeline.SortImports{},
			removeUnneededPass{set: set, toAdd: indexNeeds(r.ToAdd)},
		}, nil
	default:
		return nil, fmt.Errorf("unknown dependency strategy %d", r.Strategy)
	}
}

// declarationFor renders a need as a fresh single-selector declaration.
func declarationFor(n Need) imports.Declaration {
	return imports.Declaration{
		Qualifier: append([]string(nil), n.Qualifier...),
		Selectors: []imports.Selector{{Name: n.Name}},
		Span:      imports.NoSpan,
	}
}

// recomputePass discards the existing declarations and rebuilds the list
// from the needed set plus requested additions.
type recomputePass struct {
	needs []Need
	toAdd []Need
}

func (recomputePass) Name() string { return "FullyRecompute" }

func (p recomputePass) Transform([]imports.Declaration) []imports.Declaration {
	var out []imports.Declaration
	for _, n := range p.toAdd {
		out = append(out, declarationFor(n))
	}
	for _, n := range p.needs {
		out = append(out, declarationFor(n))
	}
	return out
}

// addImportsPass appends the requested declarations ahead of filtering so a
// just-added import cannot be removed by the same run.
type addImportsPass struct {
	toAdd []Need
}

func (addImportsPass) Name() string { return "AddImports" }

func (p addImportsPass) Transform(decls []imports.Declaration) []imports.Declaration {
	out := append([]imports.Declaration(nil), decls...)
	for _, n := range p.toAdd {
		out = append(out, declarationFor(n))
	}
	return out
}

// modifyPass implements RecomputeAndModify: existing declarations keep the
// selectors the recomputed needed set still contains, or survive whole when
// the declaration's qualifier is not fully literal in the tree or resolves
// through default-visible names. Root-namespace declarations keep their
// original qualifier text; every other modified declaration has position
// metadata stripped so it is re-rendered.
type modifyPass struct {
	set     neededSet
	symbols imports.Resolver
	toAdd   []Need
}

func (modifyPass) Name() string { return "RecomputeAndModify" }

func (p modifyPass) Transform(decls []imports.Declaration) []imports.Declaration {
	var out []imports.Declaration
	for _, n := range p.toAdd {
		out = append(out, declarationFor(n))
	}
	for _, d := range decls {
		if d.IsTombstone() {
			out = append(out, d)
			continue
		}
		qualifier := d.QualifierText()

		// A declaration whose qualifier depends on an outer value, or
		// resolves only via default-visible names, is kept whole rather
		// than filtered. The usage scanner cannot see those dependencies.
		keepWhole := !p.symbols.IsFullyLiteral(d) || p.symbols.ResolvesViaDefaults(d)

		var kept []imports.Selector
		for _, s := range d.Selectors {
			switch {
			case keepWhole:
				kept = append(kept, s)
			case s.Wildcard:
				if p.set.anyFor(qualifier) {
					kept = append(kept, s)
				}
			case p.set.contains(qualifier, s.Name):
				kept = append(kept, s)
			}
		}

		switch {
		case len(kept) == 0:
			// Dropped entirely.
		case len(kept) == len(d.Selectors):
			out = append(out, d)
		case std.IsRootNamespace(qualifier):
			modified := d.WithSelectors(kept...)
			modified.RawQualifier = d.QualifierText()
			out = append(out, modified)
		default:
			modified := d.WithSelectors(kept...)
			modified.RawQualifier = ""
			out = append(out, modified)
		}
	}
	return out
}

// removeUnneededPass filters each declaration's selectors to the referenced
// ones, or ones matching a requested addition. A declaration keeping no
// selectors becomes a tombstone at its original span rather than vanishing,
// so the renderer can delete the exact source range.
type removeUnneededPass struct {
	set   neededSet
	toAdd neededSet
}

func (removeUnneededPass) Name() string { return "RemoveUnneeded" }

func (p removeUnneededPass) Transform(decls []imports.Declaration) []imports.Declaration {
	var out []imports.Declaration
	for _, d := range decls {
		if d.IsTombstone() {
			out = append(out, d)
			continue
		}
		qualifier := d.QualifierText()
		var kept []imports.Selector
		for _, s := range d.Selectors {
			switch {
			case s.Wildcard:
				if p.set.anyFor(qualifier) {
					kept = append(kept, s)
				}
			case p.set.contains(qualifier, s.Name) || p.toAdd.contains(qualifier, s.Name):
				kept = append(kept, s)
			}
		}
		switch {
		case len(kept) == len(d.Selectors):
			out = append(out, d)
		case len(kept) == 0:
			out = append(out, d.Tombstone())
		default:
			out = append(out, d.WithSelectors(kept...))
		}
	}
	return out
}
