package region

import (
	"sort"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/errors"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// Edit is the rendered replacement one region produced, before overlap
// resolution.
type Edit struct {
	Depth   int
	Span    imports.Span
	NewText string
}

// Merge gives each source position exactly one edit. Where spans overlap,
// the edit from the more deeply nested region wins and the overlapping
// portion of the outer edit is discarded, the outer replacement text being
// split at the corresponding offsets. Resolution runs strictly sequentially
// from innermost to outermost so the outcome is deterministic. A partial
// overlap that crosses a region boundary cannot be attributed and is
// reported as a refactoring error.
func Merge(file string, edits []Edit) ([]imports.TextEdit, error) {
	ordered := append([]Edit(nil), edits...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Depth != ordered[j].Depth {
			return ordered[i].Depth > ordered[j].Depth
		}
		return ordered[i].Span.Start < ordered[j].Span.Start
	})

	var claimed []imports.Span
	var out []imports.TextEdit
	for _, e := range ordered {
		if !e.Span.IsValid() {
			continue
		}
		free := []imports.Span{e.Span}
		for _, c := range claimed {
			var next []imports.Span
			for _, f := range free {
				if !f.Overlaps(c) {
					next = append(next, f)
					continue
				}
				if !f.Contains(c) && !c.Contains(f) {
					return nil, errors.Refactoringf(
						"region edits overlap without nesting: [%d,%d) vs [%d,%d)",
						f.Start, f.End, c.Start, c.End)
				}
				if c.Contains(f) {
					continue // fully claimed by an inner region
				}
				if c.Start > f.Start {
					next = append(next, imports.Span{Start: f.Start, End: c.Start})
				}
				if c.End < f.End {
					next = append(next, imports.Span{Start: c.End, End: f.End})
				}
			}
			free = next
		}
		for _, f := range free {
			out = append(out, imports.TextEdit{
				File:    file,
				Span:    f,
				NewText: sliceReplacement(e, f),
			})
		}
		claimed = append(claimed, e.Span)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start < out[j].Span.Start
	})
	return out, nil
}

// sliceReplacement maps a surviving sub-span of an edit onto the matching
// portion of its replacement text by offset. The final segment absorbs any
// length difference between the replaced span and the replacement.
func sliceReplacement(e Edit, sub imports.Span) string {
	if sub == e.Span {
		return e.NewText
	}
	start := clamp(sub.Start-e.Span.Start, len(e.NewText))
	if sub.End >= e.Span.End {
		return e.NewText[start:]
	}
	end := clamp(sub.End-e.Span.Start, len(e.NewText))
	return e.NewText[start:end]
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
