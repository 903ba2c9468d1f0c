package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/stemsi/kinderbook/internal/command"
	"github.com/stemsi/kinderbook/internal/subject"
	"github.com/stemsi/kinderbook/internal/validator"
)

const msgInvalidIndex = "Index is not a non-zero unsigned integer."

func parseIndex(s string) (command.Index, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || strings.HasPrefix(s, "+") {
		return 0, errors.New(msgInvalidIndex)
	}
	return command.Index(n), nil
}

// parseIndexes parses whitespace-separated indexes, keeping the first
// occurrence of each in input order.
func parseIndexes(s string) ([]command.Index, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil, errors.New(msgInvalidIndex)
	}
	out := make([]command.Index, 0, len(words))
	seen := make(map[command.Index]struct{}, len(words))
	for _, w := range words {
		idx, err := parseIndex(w)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out, nil
}

func parseTargets(preamble string) (command.Targets, error) {
	if strings.EqualFold(strings.TrimSpace(preamble), "all") {
		return command.AllTargets(), nil
	}
	idx, err := parseIndexes(preamble)
	if err != nil {
		return command.Targets{}, err
	}
	return command.IndexTargets(idx...), nil
}

// parseSubjects resolves every name, dropping repeats.
func parseSubjects(r *subject.Registry, names []string) ([]*subject.Subject, error) {
	var out []*subject.Subject
	for _, n := range names {
		s, err := r.Resolve(n)
		if err != nil {
			return nil, err
		}
		dup := false
		for _, o := range out {
			if o == s {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out, nil
}

func parseScore(s string) (subject.Score, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &Error{Kind: subject.ErrInvalidScore, Msg: "Score must be an integer between 0 to 100!"}
	}
	if err := validator.Var(n, "gte=0,lte=100"); err != nil {
		return 0, &Error{Kind: subject.ErrInvalidScore, Msg: "Score must be between 0 to 100!"}
	}
	return subject.Score(n), nil
}

// checkField validates one user-supplied value against a validator tag.
func checkField(label, value, tag string) error {
	if err := validator.Var(value, tag); err != nil {
		return invalidValue(label + ": " + fieldMessages[tag])
	}
	return nil
}

var fieldMessages = map[string]string{
	"required,personname": "names should only contain English letters, spaces and . , ' ’ - ( ) /, and must contain at least one letter",
	"required,phone":      "phone numbers should only contain digits and be at least 3 digits long",
	"required,email":      "emails should be of the format local-part@domain",
	"required,max=200":    "addresses can take any values, should not be blank and must be at most 200 characters",
	"allergy":             "allergies should only contain alphanumeric characters and spaces, and must not be blank",
	"tagname":             "tags should be alphanumeric and spaces, start with an alphanumeric character and be at most 50 characters long",
}
