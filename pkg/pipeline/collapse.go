package pipeline

import (
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// CollapseImports merges adjacent declarations that denote the same target
// scope into one declaration, concatenating selector lists in order. Only
// adjacent entries merge in a single forward scan; run sorting first when
// broader merging is wanted.
type CollapseImports struct {
	Resolver imports.Resolver
}

func (CollapseImports) Name() string { return "CollapseImports" }

func (c CollapseImports) Transform(decls []imports.Declaration) []imports.Declaration {
	resolver := c.Resolver
	if resolver == nil {
		resolver = imports.TextResolver{}
	}

	var out []imports.Declaration
	for _, d := range decls {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if !last.IsTombstone() && !d.IsTombstone() && resolver.SameScope(*last, d) {
				merged := last.WithSelectors(append(append([]imports.Selector(nil), last.Selectors...), d.Selectors...)...)
				out[len(out)-1] = merged
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

// ExpandImports splits every multi-selector declaration into one declaration
// per selector. Declarations with a single selector or a wildcard pass
// through untouched.
type ExpandImports struct{}

func (ExpandImports) Name() string { return "ExpandImports" }

func (ExpandImports) Transform(decls []imports.Declaration) []imports.Declaration {
	var out []imports.Declaration
	for _, d := range decls {
		if len(d.Selectors) <= 1 || d.HasWildcard() {
			out = append(out, d)
			continue
		}
		for _, s := range d.Selectors {
			out = append(out, d.WithSelectors(s))
		}
	}
	return out
}
