// Package parser turns one line of user input into a command.
package parser

import (
	"fmt"
	"strings"

	"github.com/stemsi/kinderbook/internal/command"
	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/subject"
)

var personPrefixes = []Prefix{
	PrefixChild, PrefixParent, PrefixPhone, PrefixEmail, PrefixAddress, PrefixAllergy, PrefixTag,
}

// Parser builds commands whose subject arguments are resolved against one
// registry.
type Parser struct {
	registry *subject.Registry
}

// New creates a Parser for registry.
func New(registry *subject.Registry) *Parser {
	return &Parser{registry: registry}
}

// Words returns the command words Parse understands.
func Words() []string {
	return []string{"add", "edit", "delete", "enroll", "unenroll", "setscore", "find", "scores", "list", "clear"}
}

// Parse parses one line of input.
func (p *Parser) Parse(input string) (command.Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &Error{Kind: ErrInvalidFormat, Msg: "Invalid command format!", Usage: "Commands: " + strings.Join(Words(), ", ")}
	}
	word, args, _ := strings.Cut(input, " ")
	word = strings.ToLower(word)

	switch word {
	case "add":
		return p.parseAdd(args)
	case "edit":
		return p.parseEdit(args)
	case "delete":
		return p.parseDelete(args)
	case "enroll", "unenroll":
		return p.parseEnrollment(word, args)
	case "setscore":
		return p.parseSetScore(args)
	case "find":
		return p.parseFind(args)
	case "scores":
		idx, err := parseIndex(args)
		if err != nil {
			return nil, invalidFormat(word, "")
		}
		return command.Scores{Index: idx}, nil
	case "list":
		return command.List{}, nil
	case "clear":
		return command.Clear{}, nil
	default:
		return nil, &Error{Kind: ErrUnknownCommand, Msg: fmt.Sprintf("Unknown command: %s", word)}
	}
}

func (p *Parser) parseAdd(args string) (command.Command, error) {
	a := Tokenize(args, personPrefixes...)
	if !a.Has(PrefixChild, PrefixParent, PrefixPhone, PrefixEmail, PrefixAddress) || a.Preamble() != "" {
		return nil, invalidFormat("add", "")
	}
	if err := noDuplicates(a, "add", PrefixChild, PrefixParent, PrefixPhone, PrefixEmail, PrefixAddress); err != nil {
		return nil, err
	}

	var patch model.PersonPatch
	if err := fillPatch(a, &patch); err != nil {
		return nil, err
	}
	return command.Add{Fields: patch.Apply(model.PersonFields{})}, nil
}

func (p *Parser) parseEdit(args string) (command.Command, error) {
	a := Tokenize(args, personPrefixes...)
	idx, err := parseIndex(a.Preamble())
	if err != nil {
		return nil, invalidFormat("edit", "")
	}
	if err := noDuplicates(a, "edit", PrefixChild, PrefixParent, PrefixPhone, PrefixEmail, PrefixAddress); err != nil {
		return nil, err
	}

	var patch model.PersonPatch
	if err := fillPatch(a, &patch); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, &Error{Kind: command.ErrNothingToEdit, Msg: "At least one field to edit must be provided."}
	}
	return command.Edit{Index: idx, Patch: patch}, nil
}

// fillPatch validates every person field present in a and stores it in
// patch. A single empty r/ or t/ clears the list.
func fillPatch(a Args, patch *model.PersonPatch) error {
	single := []struct {
		prefix Prefix
		label  string
		tag    string
		dst    **string
	}{
		{PrefixChild, "Child name", "required,personname", &patch.ChildName},
		{PrefixParent, "Parent name", "required,personname", &patch.ParentName},
		{PrefixPhone, "Phone", "required,phone", &patch.Phone},
		{PrefixEmail, "Email", "required,email", &patch.Email},
		{PrefixAddress, "Address", "required,max=200", &patch.Address},
	}
	for _, f := range single {
		v, ok := a.Value(f.prefix)
		if !ok {
			continue
		}
		if err := checkField(f.label, v, f.tag); err != nil {
			return err
		}
		*f.dst = &v
	}

	multi := []struct {
		prefix Prefix
		label  string
		tag    string
		dst    **[]string
	}{
		{PrefixAllergy, "Allergy", "allergy", &patch.Allergies},
		{PrefixTag, "Tag", "tagname", &patch.Tags},
	}
	for _, f := range multi {
		values := a.All(f.prefix)
		if len(values) == 0 {
			continue
		}
		if len(values) == 1 && values[0] == "" {
			values = []string{}
		}
		for _, v := range values {
			if err := checkField(f.label, v, f.tag); err != nil {
				return err
			}
		}
		*f.dst = &values
	}
	return nil
}

func (p *Parser) parseDelete(args string) (command.Command, error) {
	idx, err := parseIndexes(args)
	if err != nil {
		return nil, invalidFormat("delete", "")
	}
	return command.Delete{Indexes: idx}, nil
}

func (p *Parser) parseEnrollment(word, args string) (command.Command, error) {
	a := Tokenize(args, PrefixSubject)
	if !a.Has(PrefixSubject) || a.Preamble() == "" {
		return nil, invalidFormat(word, "")
	}
	if bad := unknownPrefixes(args, PrefixSubject); len(bad) > 0 {
		return nil, invalidFormat(word, "Invalid prefixes included: "+strings.Join(bad, ", "))
	}

	targets, err := parseTargets(a.Preamble())
	if err != nil {
		return nil, invalidFormat(word, err.Error())
	}
	subjects, err := parseSubjects(p.registry, a.All(PrefixSubject))
	if err != nil {
		return nil, err
	}

	if word == "enroll" {
		return command.Enroll{Targets: targets, Subjects: subjects}, nil
	}
	return command.Unenroll{Targets: targets, Subjects: subjects}, nil
}

func (p *Parser) parseSetScore(args string) (command.Command, error) {
	a := Tokenize(args, PrefixSubject, PrefixScore)
	if !a.Has(PrefixSubject, PrefixScore) || a.Preamble() == "" {
		return nil, invalidFormat("setscore", "")
	}
	if bad := unknownPrefixes(args, PrefixSubject, PrefixScore); len(bad) > 0 {
		return nil, invalidFormat("setscore", "Invalid prefixes included: "+strings.Join(bad, ", "))
	}
	if err := noDuplicates(a, "setscore", PrefixSubject, PrefixScore); err != nil {
		return nil, err
	}

	targets, err := parseTargets(a.Preamble())
	if err != nil {
		return nil, invalidFormat("setscore", err.Error())
	}
	name, _ := a.Value(PrefixSubject)
	s, err := p.registry.Resolve(name)
	if err != nil {
		return nil, err
	}
	raw, _ := a.Value(PrefixScore)
	score, err := parseScore(raw)
	if err != nil {
		return nil, err
	}
	return command.SetScore{Targets: targets, Subject: s, Score: score}, nil
}

func (p *Parser) parseFind(args string) (command.Command, error) {
	a := Tokenize(args, PrefixChild, PrefixParent, PrefixAllergy, PrefixTag)
	if a.Preamble() != "" {
		return nil, invalidFormat("find", "")
	}
	pred := model.KeywordPredicate{
		ChildName:  words(a.All(PrefixChild)),
		ParentName: words(a.All(PrefixParent)),
		Allergies:  nonEmpty(a.All(PrefixAllergy)),
		Tags:       nonEmpty(a.All(PrefixTag)),
	}
	if pred.IsEmpty() {
		return nil, invalidFormat("find", "")
	}
	return command.Find{Predicate: pred}, nil
}

func noDuplicates(a Args, word string, ps ...Prefix) error {
	dups := a.Duplicates(ps...)
	if len(dups) == 0 {
		return nil
	}
	names := make([]string, len(dups))
	for i, d := range dups {
		names[i] = string(d)
	}
	return invalidFormat(word, "Multiple values specified for the following single-valued field(s): "+strings.Join(names, " "))
}

func words(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Fields(v)...)
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
