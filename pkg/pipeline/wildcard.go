package pipeline

import (
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/imports"
)

// AlwaysUseWildcards rewrites declarations on the configured qualifiers to a
// single wildcard selector. The first matching declaration per qualifier is
// rewritten; later declarations on the same qualifier are dropped as
// redundant. Declarations carrying a rename are left alone, since a wildcard
// cannot express the rename.
type AlwaysUseWildcards struct {
	Qualifiers map[string]bool
}

func (AlwaysUseWildcards) Name() string { return "AlwaysUseWildcards" }

func (a AlwaysUseWildcards) Transform(decls []imports.Declaration) []imports.Declaration {
	rewritten := make(map[string]bool)
	var out []imports.Declaration
	for _, d := range decls {
		qualifier := d.QualifierText()
		if d.IsTombstone() || !a.Qualifiers[qualifier] || d.HasRename() {
			out = append(out, d)
			continue
		}
		if rewritten[qualifier] {
			continue
		}
		rewritten[qualifier] = true
		if len(d.Selectors) == 1 && d.Selectors[0].Wildcard {
			out = append(out, d)
			continue
		}
		out = append(out, d.WithSelectors(imports.Selector{Wildcard: true}))
	}
	return out
}

// CollapseSelectorsToWildcard rewrites declarations whose explicit selector
// count exceeds MaxIndividualImports to a single wildcard, when doing so is
// safe. A collapse is unsafe when a name it would newly make visible is
// implicit in the target scope, or collides with a name an earlier wildcard
// in the same list already exposes. Declarations are evaluated left to
// right, so later decisions see the names exposed by earlier wildcards,
// including ones created in the same pass.
type CollapseSelectorsToWildcard struct {
	MaxIndividualImports int
	Exclude              map[string]bool
	Resolver             imports.Resolver
}

func (CollapseSelectorsToWildcard) Name() string { return "CollapseSelectorsToWildcard" }

func (c CollapseSelectorsToWildcard) Transform(decls []imports.Declaration) []imports.Declaration {
	resolver := c.Resolver
	if resolver == nil {
		resolver = imports.TextResolver{}
	}

	// Names already exposed by wildcards earlier in the list.
	visible := make(map[string]bool)

	var out []imports.Declaration
	for _, d := range decls {
		if d.HasWildcard() {
			for _, n := range newlyVisible(resolver, d) {
				visible[n] = true
			}
			out = append(out, d)
			continue
		}
		if !c.eligible(d) {
			out = append(out, d)
			continue
		}
		newNames := newlyVisible(resolver, d)
		if !c.safe(resolver, d, newNames, visible) {
			out = append(out, d)
			continue
		}
		for _, n := range newNames {
			visible[n] = true
		}
		out = append(out, d.WithSelectors(imports.Selector{Wildcard: true}))
	}
	return out
}

func (c CollapseSelectorsToWildcard) eligible(d imports.Declaration) bool {
	if d.IsTombstone() || d.HasRename() {
		return false
	}
	if c.Exclude[d.QualifierText()] {
		return false
	}
	return len(d.NamedSelectors()) > c.MaxIndividualImports
}

func (c CollapseSelectorsToWildcard) safe(resolver imports.Resolver, d imports.Declaration, newNames []string, visible map[string]bool) bool {
	if len(newNames) == 0 && len(resolver.Members(d.Qualifier)) == 0 {
		// Unknown member set: collapsing could expose anything.
		return false
	}
	for _, n := range newNames {
		if visible[n] {
			return false
		}
		if resolver.IsImplicit(d.Qualifier, n) {
			return false
		}
	}
	return true
}

// newlyVisible returns the members a wildcard on d's scope would expose
// beyond the explicitly listed selectors.
func newlyVisible(resolver imports.Resolver, d imports.Declaration) []string {
	explicit := make(map[string]bool)
	for _, n := range d.NamedSelectors() {
		explicit[n] = true
	}
	var out []string
	for _, m := range resolver.Members(d.Qualifier) {
		if !explicit[m] {
			out = append(out, m)
		}
	}
	return out
}
