package knowledge

import "strings"

// Lookup returns a formatted answer for the first corpus document whose
// keywords appear in the question, or "" when no document matches. Documents
// are checked in corpus order, so more specific entries (e.g. "laminate
// door") must precede broader ones ("laminate").
func Lookup(question string) string {
	q := strings.ToLower(question)
	for _, doc := range orderedForLookup() {
		for _, kw := range doc.Keywords {
			if strings.Contains(q, kw) {
				return format(doc)
			}
		}
	}
	return ""
}

// orderedForLookup sorts doors before laminates so "laminate door" does not
// resolve to the laminate-sheet entry.
func orderedForLookup() []Doc {
	docs := Corpus()
	ordered := make([]Doc, 0, len(docs))
	for _, d := range docs {
		if d.Type == "door" {
			ordered = append(ordered, d)
		}
	}
	for _, d := range docs {
		if d.Type != "door" {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

func format(doc Doc) string {
	var sb strings.Builder
	sb.WriteString("**")
	sb.WriteString(doc.Title)
	sb.WriteString("**\n\n")
	sb.WriteString(doc.Content)
	sb.WriteString("\n\n")
	sb.WriteString(ContactFooter)
	return sb.String()
}
