// Package command holds the operations a user can run against the address
// book. Every command validates its input against the displayed list before
// it mutates anything, so a failed command leaves no partial state behind.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/subject"
)

var (
	ErrIndexOutOfRange = errors.New("the child index provided is invalid")
	ErrDuplicatePerson = errors.New("this child already exists in the address book")
	ErrNothingToEdit   = errors.New("at least one field to edit must be provided")
)

// Model is the state a command works on: the person list with its displayed
// view, and the subject registry.
type Model interface {
	FilteredPersons() []model.Person
	AllPersons() []model.Person
	AddPerson(p model.Person) error
	SetPerson(target, edited model.Person) error
	DeletePerson(p model.Person) error
	HasPerson(p model.Person) bool
	UpdateFilter(pred func(model.Person) bool)
	Registry() *subject.Registry
	IDs() *model.IDGenerator
}

// Command is one parsed user instruction.
type Command interface {
	Name() string
	Execute(m Model) (Result, error)
}

// OutcomeKind says what happened to one person (and subject) during a
// command.
type OutcomeKind string

const (
	OutcomeAdded      OutcomeKind = "added"
	OutcomeEdited     OutcomeKind = "edited"
	OutcomeDeleted    OutcomeKind = "deleted"
	OutcomeEnrolled   OutcomeKind = "enrolled"
	OutcomeUnenrolled OutcomeKind = "unenrolled"
	OutcomeSet        OutcomeKind = "set"
	OutcomeSkipped    OutcomeKind = "skipped"
	OutcomeScore      OutcomeKind = "score"
)

// Outcome reports the effect of a command on one person, or on one
// (person, subject) pair for the enrollment commands.
type Outcome struct {
	PersonID model.PersonID `json:"person_id"`
	Child    string         `json:"child"`
	Subject  string         `json:"subject,omitempty"`
	Kind     OutcomeKind    `json:"kind"`
	Score    *subject.Score `json:"score,omitempty"`
}

// Result is what a command reports back to the user.
type Result struct {
	Feedback string    `json:"feedback"`
	Outcomes []Outcome `json:"outcomes"`
	// Changed is set when the command mutated the address book.
	Changed bool `json:"-"`
}

// Count returns how many outcomes have the given kind.
func (r Result) Count(kind OutcomeKind) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// Index is a one-based position in the displayed list.
type Index int

// ZeroBased returns the slice position of i.
func (i Index) ZeroBased() int { return int(i) - 1 }

func (i Index) String() string { return fmt.Sprint(int(i)) }

// Targets selects persons from the displayed list, either by index or all of
// them.
type Targets struct {
	Indexes []Index
	All     bool
}

// AllTargets selects every displayed person.
func AllTargets() Targets { return Targets{All: true} }

// IndexTargets selects the persons at the given one-based indexes.
func IndexTargets(indexes ...Index) Targets {
	return Targets{Indexes: append([]Index(nil), indexes...)}
}

func (t Targets) String() string {
	if t.All {
		return "all"
	}
	parts := make([]string, len(t.Indexes))
	for i, idx := range t.Indexes {
		parts[i] = idx.String()
	}
	return strings.Join(parts, " ")
}

// resolve maps the targets onto the displayed list. The list is read once,
// so "all" means everyone displayed when the command starts. Every index is
// checked before anything is returned.
func (t Targets) resolve(m Model) ([]model.Person, error) {
	shown := m.FilteredPersons()
	if t.All {
		return shown, nil
	}
	return pick(shown, t.Indexes)
}

func pick(shown []model.Person, indexes []Index) ([]model.Person, error) {
	out := make([]model.Person, 0, len(indexes))
	for _, idx := range indexes {
		i := idx.ZeroBased()
		if i < 0 || i >= len(shown) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, int(idx))
		}
		out = append(out, shown[i])
	}
	return out, nil
}

func scorePtr(s subject.Score) *subject.Score { return &s }
