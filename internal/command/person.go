package command

import (
	"fmt"
	"strings"

	"github.com/stemsi/kinderbook/internal/model"
)

// Add creates a new child record.
type Add struct {
	Fields model.PersonFields
}

func (c Add) Name() string { return "add" }

func (c Add) Execute(m Model) (Result, error) {
	p := model.NewPerson(m.IDs(), c.Fields)
	if m.HasPerson(p) {
		return Result{}, ErrDuplicatePerson
	}
	if err := m.AddPerson(p); err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: "New child added: " + model.Format(p),
		Outcomes: []Outcome{{PersonID: p.ID(), Child: p.ChildName(), Kind: OutcomeAdded}},
		Changed:  true,
	}, nil
}

// Edit replaces the fields of the child at Index. The edited record keeps
// its identity, so its enrollments and scores follow it.
type Edit struct {
	Index Index
	Patch model.PersonPatch
}

func (c Edit) Name() string { return "edit" }

func (c Edit) Execute(m Model) (Result, error) {
	if c.Patch.IsEmpty() {
		return Result{}, ErrNothingToEdit
	}
	targets, err := pick(m.FilteredPersons(), []Index{c.Index})
	if err != nil {
		return Result{}, err
	}
	target := targets[0]
	edited := target.WithFields(c.Patch.Apply(target.Fields()))

	if !target.IsSamePerson(edited) && m.HasPerson(edited) {
		return Result{}, ErrDuplicatePerson
	}
	if err := m.SetPerson(target, edited); err != nil {
		return Result{}, err
	}
	m.Registry().Rehome(target, edited)

	return Result{
		Feedback: "Edited Child: " + model.Format(edited),
		Outcomes: []Outcome{{PersonID: edited.ID(), Child: edited.ChildName(), Kind: OutcomeEdited}},
		Changed:  true,
	}, nil
}

// Delete removes the children at the given indexes from the address book
// and from every subject.
type Delete struct {
	Indexes []Index
}

func (c Delete) Name() string { return "delete" }

func (c Delete) Execute(m Model) (Result, error) {
	persons, err := pick(m.FilteredPersons(), c.Indexes)
	if err != nil {
		return Result{}, err
	}
	return remove(m, unique(persons), "Deleted Person: ")
}

// Clear deletes every child, including those hidden by the current filter.
type Clear struct{}

func (c Clear) Name() string { return "clear" }

func (c Clear) Execute(m Model) (Result, error) {
	res, err := remove(m, m.AllPersons(), "")
	if err != nil {
		return res, err
	}
	res.Feedback = "Address book has been cleared!"
	return res, nil
}

func remove(m Model, persons []model.Person, prefix string) (Result, error) {
	var res Result
	var sb strings.Builder
	for _, p := range persons {
		if err := m.DeletePerson(p); err != nil {
			return res, fmt.Errorf("delete %s: %w", p.ChildName(), err)
		}
		m.Registry().UnenrollEverywhere(p)
		res.Outcomes = append(res.Outcomes, Outcome{PersonID: p.ID(), Child: p.ChildName(), Kind: OutcomeDeleted})
		res.Changed = true
		sb.WriteString(prefix)
		sb.WriteString(model.Format(p))
		sb.WriteString("\n")
	}
	res.Feedback = strings.TrimSuffix(sb.String(), "\n")
	return res, nil
}

func unique(persons []model.Person) []model.Person {
	seen := make(map[model.PersonID]struct{}, len(persons))
	out := persons[:0:0]
	for _, p := range persons {
		if _, ok := seen[p.ID()]; ok {
			continue
		}
		seen[p.ID()] = struct{}{}
		out = append(out, p)
	}
	return out
}
