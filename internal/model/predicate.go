package model

import "strings"

// KeywordPredicate matches a person when any keyword hits its field:
// whole words of the child or parent name, or a full allergy or tag, all
// compared case-insensitively.
type KeywordPredicate struct {
	ChildName  []string
	ParentName []string
	Allergies  []string
	Tags       []string
}

// IsEmpty reports whether the predicate has no keywords at all.
func (k KeywordPredicate) IsEmpty() bool {
	return len(k.ChildName) == 0 && len(k.ParentName) == 0 &&
		len(k.Allergies) == 0 && len(k.Tags) == 0
}

// Match reports whether p satisfies the predicate.
func (k KeywordPredicate) Match(p Person) bool {
	return anyWord(p.fields.ChildName, k.ChildName) ||
		anyWord(p.fields.ParentName, k.ParentName) ||
		anyEqualFold(p.fields.Allergies, k.Allergies) ||
		anyEqualFold(p.fields.Tags, k.Tags)
}

func anyWord(sentence string, keywords []string) bool {
	words := strings.Fields(sentence)
	for _, kw := range keywords {
		for _, w := range words {
			if strings.EqualFold(w, kw) {
				return true
			}
		}
	}
	return false
}

func anyEqualFold(values, keywords []string) bool {
	for _, kw := range keywords {
		for _, v := range values {
			if strings.EqualFold(v, kw) {
				return true
			}
		}
	}
	return false
}
