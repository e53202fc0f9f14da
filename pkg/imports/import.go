package imports

import "strings"

// Span is a half-open byte range [Start, End) in a source file.
type Span struct {
	Start int
	End   int
}

// NoSpan marks a declaration whose position metadata has been stripped,
// so that it is re-rendered from scratch instead of reusing source text.
var NoSpan = Span{Start: -1, End: -1}

// IsValid reports whether the span points at a real source range.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the two spans share at least one position.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Selector is one binding brought into scope by an import declaration:
// a named member, optionally renamed, or a wildcard.
type Selector struct {
	Name     string // imported member name, empty for a wildcard
	Rename   string // local name, empty if not renamed
	Wildcard bool
}

// Render returns the selector in Scala source form.
func (s Selector) Render() string {
	if s.Wildcard {
		return "_"
	}
	if s.Rename != "" && s.Rename != s.Name {
		return s.Name + " => " + s.Rename
	}
	return s.Name
}

// LocalName returns the name the selector makes visible in the importing scope.
func (s Selector) LocalName() string {
	if s.Rename != "" {
		return s.Rename
	}
	return s.Name
}

// Declaration represents a single import declaration. Declarations are
// immutable values: transformations return new declarations instead of
// mutating in place.
//
// An empty selector list is a tombstone: it marks the declaration's original
// text for deletion while keeping its span so the renderer can remove the
// exact source range.
type Declaration struct {
	// Qualifier is the dotted path of the target scope, one segment per entry.
	Qualifier []string

	// RawQualifier preserves the original qualifier text (e.g. a
	// "_root_."-prefixed path). When set, rendering uses it verbatim.
	RawQualifier string

	Selectors []Selector

	// Span is the declaration's source range, NoSpan once position metadata
	// has been stripped by a transformation.
	Span Span

	// Text is the original source text of the declaration. A declaration
	// emitted unchanged keeps it so formatting is preserved.
	Text string

	// GroupBreak asks the renderer for a blank line before this declaration.
	// Recomputed from scratch by the grouping pass on every run.
	GroupBreak bool
}

// QualifierText returns the dotted qualifier, preferring the original text.
func (d Declaration) QualifierText() string {
	if d.RawQualifier != "" {
		return d.RawQualifier
	}
	return strings.Join(d.Qualifier, ".")
}

// IsTombstone reports whether the declaration only marks its span for deletion.
func (d Declaration) IsTombstone() bool {
	return len(d.Selectors) == 0
}

// HasWildcard reports whether any selector is a wildcard.
func (d Declaration) HasWildcard() bool {
	for _, s := range d.Selectors {
		if s.Wildcard {
			return true
		}
	}
	return false
}

// HasRename reports whether any selector renames its member.
func (d Declaration) HasRename() bool {
	for _, s := range d.Selectors {
		if !s.Wildcard && s.Rename != "" && s.Rename != s.Name {
			return true
		}
	}
	return false
}

// NamedSelectors returns the non-wildcard selector names in order.
func (d Declaration) NamedSelectors() []string {
	var names []string
	for _, s := range d.Selectors {
		if !s.Wildcard {
			names = append(names, s.Name)
		}
	}
	return names
}

// WithSelectors returns a copy of the declaration carrying the given
// selectors, with position metadata and preserved text stripped so the
// renderer produces fresh output.
func (d Declaration) WithSelectors(selectors ...Selector) Declaration {
	out := d
	out.Selectors = append([]Selector(nil), selectors...)
	out.Span = NoSpan
	out.Text = ""
	return out
}

// Tombstone returns a copy of the declaration with no selectors, retaining
// the original span and text for precise deletion.
func (d Declaration) Tombstone() Declaration {
	out := d
	out.Selectors = nil
	return out
}

// Clone returns a deep copy of the declaration.
func (d Declaration) Clone() Declaration {
	out := d
	out.Qualifier = append([]string(nil), d.Qualifier...)
	out.Selectors = append([]Selector(nil), d.Selectors...)
	return out
}
