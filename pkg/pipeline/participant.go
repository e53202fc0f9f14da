// Package pipeline implements the import-reorganization passes. Each pass is
// a pure, deterministic transformation from an ordered declaration list to a
// new one; passes compose by sequential application.
package pipeline

import (
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// Participant transforms an ordered list of import declarations into a new
// one. Implementations never mutate the input.
type Participant interface {
	// Name identifies the pass in logs and diagnostics.
	Name() string

	// Transform returns the reorganized declaration list.
	Transform(decls []imports.Declaration) []imports.Declaration
}

// Pipeline applies its participants in order.
type Pipeline []Participant

func (p Pipeline) Name() string { return "Pipeline" }

func (p Pipeline) Transform(decls []imports.Declaration) []imports.Declaration {
	out := decls
	for _, part := range p {
		out = part.Transform(out)
	}
	return out
}

// maxFixedPointRounds bounds fixed-point iteration; the base passes converge
// in two rounds, the bound only guards against a misbehaving participant.
const maxFixedPointRounds = 8

// FixedPoint wraps a participant and reapplies it until the output stops
// changing. Sorting moves same-qualifier declarations next to each other,
// which gives the adjacent-only collapse pass new work on the next round;
// iterating to a fixed point is what makes the default pipeline idempotent.
type FixedPoint struct {
	Inner Participant
}

func (f FixedPoint) Name() string { return "FixedPoint(" + f.Inner.Name() + ")" }

func (f FixedPoint) Transform(decls []imports.Declaration) []imports.Declaration {
	current := decls
	for i := 0; i < maxFixedPointRounds; i++ {
		next := f.Inner.Transform(current)
		if renderedEqual(current, next) {
			return next
		}
		current = next
	}
	return current
}

func renderedEqual(a, b []imports.Declaration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Render() != b[i].Render() || a[i].GroupBreak != b[i].GroupBreak {
			return false
		}
	}
	return true
}

// Default returns the standard reorganization pipeline: collapse adjacent
// same-scope imports, drop imports shadowed by wildcards, normalize selector
// lists and sort.
func Default(resolver imports.Resolver) Participant {
	return FixedPoint{Inner: Pipeline{
		CollapseImports{Resolver: resolver},
		RemoveDuplicatedByWildcard{},
		SortImportSelectors{},
		SortImports{},
	}}
}
