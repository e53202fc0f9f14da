package imports

// TextEdit replaces one source range with new text. Edits produced by a
// reorganization run are non-overlapping and ordered by position.
type TextEdit struct {
	File    string
	Span    Span
	NewText string
}

// ApplyEdits applies non-overlapping edits to text, latest position first so
// earlier offsets stay valid.
func ApplyEdits(text string, edits []TextEdit) string {
	ordered := append([]TextEdit(nil), edits...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Span.Start > ordered[j-1].Span.Start; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	for _, e := range ordered {
		if !e.Span.IsValid() || e.Span.End > len(text) {
			continue
		}
		text = text[:e.Span.Start] + e.NewText + text[e.Span.End:]
	}
	return text
}
