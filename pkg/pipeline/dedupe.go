package pipeline

import (
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// RemoveDuplicates keeps the first occurrence of each declaration, compared
// by full rendered text, preserving the relative order of survivors.
type RemoveDuplicates struct{}

func (RemoveDuplicates) Name() string { return "RemoveDuplicates" }

func (RemoveDuplicates) Transform(decls []imports.Declaration) []imports.Declaration {
	seen := make(map[string]bool, len(decls))
	var out []imports.Declaration
	for _, d := range decls {
		key := d.Render()
		if key != "" && seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

// RemoveDuplicatedByWildcard drops explicit selectors that a wildcard on the
// same qualifier already makes visible. Within one declaration a wildcard
// absorbs its non-renamed named selectors; across the list, a declaration
// whose selectors are all covered by another declaration's wildcard is
// removed. Renamed selectors are never covered by a wildcard.
type RemoveDuplicatedByWildcard struct{}

func (RemoveDuplicatedByWildcard) Name() string { return "RemoveDuplicatedByWildcard" }

func (RemoveDuplicatedByWildcard) Transform(decls []imports.Declaration) []imports.Declaration {
	wildcarded := make(map[string]bool)
	for _, d := range decls {
		if d.HasWildcard() {
			wildcarded[d.QualifierText()] = true
		}
	}

	var out []imports.Declaration
	for _, d := range decls {
		switch {
		case d.IsTombstone():
			out = append(out, d)
		case d.HasWildcard():
			kept := make([]imports.Selector, 0, len(d.Selectors))
			for _, s := range d.Selectors {
				if s.Wildcard || (s.Rename != "" && s.Rename != s.Name) {
					kept = append(kept, s)
				}
			}
			if len(kept) == len(d.Selectors) {
				out = append(out, d)
			} else {
				out = append(out, d.WithSelectors(kept...))
			}
		case wildcarded[d.QualifierText()] && !d.HasRename():
			// Covered entirely by a wildcard elsewhere in the list.
		default:
			out = append(out, d)
		}
	}
	return out
}
