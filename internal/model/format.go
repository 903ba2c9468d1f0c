package model

import "strings"

// Format renders the full card of a person for command feedback.
func Format(p Person) string {
	var b strings.Builder
	b.WriteString(p.ChildName())
	b.WriteString("; Parent: ")
	b.WriteString(p.ParentName())
	b.WriteString("; Phone: ")
	b.WriteString(p.Phone())
	b.WriteString("; Email: ")
	b.WriteString(p.Email())
	b.WriteString("; Address: ")
	b.WriteString(p.Address())
	b.WriteString("; Allergies: ")
	writeBracketed(&b, p.fields.Allergies, "[None]")
	b.WriteString("; Tags: ")
	writeBracketed(&b, p.fields.Tags, "[No Tags]")
	return b.String()
}

// FormatShort renders only the child name.
func FormatShort(p Person) string {
	return p.ChildName()
}

func writeBracketed(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		b.WriteString(empty)
		return
	}
	for _, it := range items {
		b.WriteByte('[')
		b.WriteString(it)
		b.WriteByte(']')
	}
}
