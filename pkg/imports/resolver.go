package imports

// Resolver is the symbol-model collaborator consulted by transformations
// that need to see past qualifier text: structural same-scope checks, member
// enumeration for wildcard safety, and the dependency heuristics of the
// recompute-and-modify strategy.
type Resolver interface {
	// SameScope reports whether two declarations denote the same target
	// scope, decided by walking the resolved owner chains rather than by
	// comparing qualifier text.
	SameScope(a, b Declaration) bool

	// Members returns the full member set of the scope named by qualifier.
	Members(qualifier []string) []string

	// IsImplicit reports whether the member of the given scope is implicit
	// or otherwise derivable, making it unsafe to expose through a wildcard.
	IsImplicit(qualifier []string, member string) bool

	// IsFullyLiteral reports whether every segment of the declaration's
	// qualifier is a literal scope name in the tree. A non-literal portion
	// means the declaration depends on an outer value or import.
	IsFullyLiteral(d Declaration) bool

	// ResolvesViaDefaults reports whether the qualifier's non-literal
	// portion resolves through names that are imported by default.
	ResolvesViaDefaults(d Declaration) bool
}

// TextResolver is the zero-configuration resolver used when no symbol model
// is available: scope identity degrades to canonical qualifier text, member
// sets are unknown, and every qualifier counts as fully literal.
type TextResolver struct{}

func (TextResolver) SameScope(a, b Declaration) bool {
	return canonicalQualifier(a) == canonicalQualifier(b)
}

func (TextResolver) Members([]string) []string { return nil }

func (TextResolver) IsImplicit([]string, string) bool { return false }

func (TextResolver) IsFullyLiteral(Declaration) bool { return true }

func (TextResolver) ResolvesViaDefaults(Declaration) bool { return false }

func canonicalQualifier(d Declaration) string {
	segments := d.Qualifier
	if len(segments) > 0 && segments[0] == "_root_" {
		segments = segments[1:]
	}
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
