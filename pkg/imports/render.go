package imports

import "strings"

// Render returns the declaration in Scala source form. A tombstone renders
// to the empty string, and an unmodified declaration reuses its original
// source text so formatting survives.
func (d Declaration) Render() string {
	if d.IsTombstone() {
		return ""
	}
	if d.Text != "" && d.Span.IsValid() {
		return d.Text
	}
	qualifier := d.QualifierText()
	if len(d.Selectors) == 1 {
		s := d.Selectors[0]
		if s.Wildcard {
			return "import " + qualifier + "._"
		}
		if s.Rename != "" && s.Rename != s.Name {
			return "import " + qualifier + ".{" + s.Render() + "}"
		}
		return "import " + qualifier + "." + s.Name
	}
	rendered := make([]string, 0, len(d.Selectors))
	for _, s := range d.Selectors {
		rendered = append(rendered, s.Render())
	}
	return "import " + qualifier + ".{" + strings.Join(rendered, ", ") + "}"
}

// wildcardSortMarker sorts after every legal identifier character, so a
// wildcard selector orders after named selectors sharing its qualifier.
const wildcardSortMarker = "\x7f"

// SortKey returns the key used to order declarations: the qualifier text
// joined with the single selector name, a marker sorting after any name for
// a lone wildcard, or the bare qualifier text for multi-selector declarations.
func (d Declaration) SortKey() string {
	qualifier := d.QualifierText()
	if len(d.Selectors) == 1 {
		if d.Selectors[0].Wildcard {
			return qualifier + "." + wildcardSortMarker
		}
		return qualifier + "." + d.Selectors[0].Name
	}
	return qualifier + "." + qualifier
}

// RenderAll renders a declaration list as consecutive source lines using the
// given per-line indentation, inserting a blank line before every group break
// and skipping tombstones.
func RenderAll(decls []Declaration, indent string) string {
	var b strings.Builder
	first := true
	for _, d := range decls {
		if d.IsTombstone() {
			continue
		}
		if !first {
			b.WriteString("\n")
			if d.GroupBreak {
				b.WriteString("\n")
			}
			b.WriteString(indent)
		}
		b.WriteString(d.Render())
		first = false
	}
	return b.String()
}
