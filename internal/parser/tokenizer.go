package parser

import (
	"slices"
	"strings"
	"unicode"
)

// Prefix marks the start of an argument value, e.g. "c/Alex".
type Prefix string

const (
	PrefixChild   Prefix = "c/"
	PrefixParent  Prefix = "b/"
	PrefixPhone   Prefix = "p/"
	PrefixEmail   Prefix = "e/"
	PrefixAddress Prefix = "a/"
	PrefixAllergy Prefix = "r/"
	PrefixTag     Prefix = "t/"
	PrefixSubject Prefix = "s/"
	PrefixScore   Prefix = "g/"
)

// Args is the result of tokenizing a command's arguments: the text before
// the first prefix and every value given for each prefix, in input order.
type Args struct {
	preamble string
	values   map[Prefix][]string
}

// Preamble returns the trimmed text before the first prefix.
func (a Args) Preamble() string { return a.preamble }

// Value returns the last value given for p.
func (a Args) Value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// All returns every value given for p.
func (a Args) All(p Prefix) []string {
	return append([]string(nil), a.values[p]...)
}

// Has reports whether every prefix in ps was given at least once.
func (a Args) Has(ps ...Prefix) bool {
	for _, p := range ps {
		if len(a.values[p]) == 0 {
			return false
		}
	}
	return true
}

// Duplicates returns the prefixes among ps that were given more than once.
func (a Args) Duplicates(ps ...Prefix) []Prefix {
	var out []Prefix
	for _, p := range ps {
		if len(a.values[p]) > 1 {
			out = append(out, p)
		}
	}
	return out
}

type position struct {
	prefix Prefix
	start  int
}

// Tokenize splits args on the given prefixes. A prefix only counts when it
// starts a word, so "a/b" inside an address value is left alone unless it
// follows whitespace.
func Tokenize(args string, prefixes ...Prefix) Args {
	args = " " + args
	var found []position
	for _, p := range prefixes {
		for from := 0; ; {
			i := strings.Index(args[from:], string(p))
			if i < 0 {
				break
			}
			at := from + i
			if at > 0 && unicode.IsSpace(rune(args[at-1])) {
				found = append(found, position{prefix: p, start: at})
			}
			from = at + 1
		}
	}
	slices.SortFunc(found, func(a, b position) int { return a.start - b.start })

	out := Args{values: make(map[Prefix][]string)}
	end := len(args)
	if len(found) > 0 {
		end = found[0].start
	}
	out.preamble = strings.TrimSpace(args[:end])

	for i, pos := range found {
		end := len(args)
		if i+1 < len(found) {
			end = found[i+1].start
		}
		value := strings.TrimSpace(args[pos.start+len(pos.prefix) : end])
		out.values[pos.prefix] = append(out.values[pos.prefix], value)
	}
	return out
}

// unknownPrefixes returns words of args that look like a prefix ("x/...")
// but are not in allowed.
func unknownPrefixes(args string, allowed ...Prefix) []string {
	var out []string
	for _, word := range strings.Fields(args) {
		slash := strings.IndexByte(word, '/')
		if slash <= 0 || !isLetters(word[:slash]) {
			continue
		}
		if !slices.Contains(allowed, Prefix(word[:slash+1])) {
			out = append(out, word[:slash+1])
		}
	}
	return out
}

func isLetters(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
