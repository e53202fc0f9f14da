package pipeline

import (
	"sort"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// SortImports orders declarations by their sort key: qualifier text plus the
// single selector name, with a lone wildcard ordered after any named selector
// sharing the qualifier. Multi-selector declarations key on the bare
// qualifier. The sort is stable.
type SortImports struct{}

func (SortImports) Name() string { return "SortImports" }

func (SortImports) Transform(decls []imports.Declaration) []imports.Declaration {
	out := append([]imports.Declaration(nil), decls...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// SortImportSelectors normalizes selector lists: declarations with more than
// one selector and no wildcard get their selectors deduplicated by name
// (first occurrence wins) and sorted by name. Single-selector and wildcard
// declarations pass through.
type SortImportSelectors struct{}

func (SortImportSelectors) Name() string { return "SortImportSelectors" }

func (SortImportSelectors) Transform(decls []imports.Declaration) []imports.Declaration {
	var out []imports.Declaration
	for _, d := range decls {
		if len(d.Selectors) <= 1 || d.HasWildcard() {
			out = append(out, d)
			continue
		}
		seen := make(map[string]bool, len(d.Selectors))
		unique := make([]imports.Selector, 0, len(d.Selectors))
		for _, s := range d.Selectors {
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			unique = append(unique, s)
		}
		sorted := append([]imports.Selector(nil), unique...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
		if selectorsEqual(d.Selectors, sorted) {
			out = append(out, d)
			continue
		}
		out = append(out, d.WithSelectors(sorted...))
	}
	return out
}

func selectorsEqual(a, b []imports.Selector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
