package command

import (
	"fmt"
	"strings"

	"github.com/stemsi/kinderbook/internal/model"
)

// List shows every child again.
type List struct{}

func (c List) Name() string { return "list" }

func (c List) Execute(m Model) (Result, error) {
	m.UpdateFilter(nil)
	return Result{Feedback: "Listed all children"}, nil
}

// Find narrows the displayed list to children matching the keywords.
type Find struct {
	Predicate model.KeywordPredicate
}

func (c Find) Name() string { return "find" }

func (c Find) Execute(m Model) (Result, error) {
	m.UpdateFilter(c.Predicate.Match)
	return Result{Feedback: fmt.Sprintf("%d children listed!", len(m.FilteredPersons()))}, nil
}

// Scores reports the grades of one displayed child.
type Scores struct {
	Index Index
}

func (c Scores) Name() string { return "scores" }

func (c Scores) Execute(m Model) (Result, error) {
	persons, err := pick(m.FilteredPersons(), []Index{c.Index})
	if err != nil {
		return Result{}, err
	}
	p := persons[0]

	scores := m.Registry().ScoresOf(p)
	if len(scores) == 0 {
		return Result{Feedback: fmt.Sprintf("%s is not enrolled in any subject", model.FormatShort(p))}, nil
	}

	var res Result
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scores of %s:", model.FormatShort(p))
	for _, ss := range scores {
		fmt.Fprintf(&sb, "\n%s: %s", ss.Subject, ss.Score)
		res.Outcomes = append(res.Outcomes, Outcome{
			PersonID: p.ID(), Child: p.ChildName(), Subject: ss.Subject, Kind: OutcomeScore, Score: scorePtr(ss.Score),
		})
	}
	res.Feedback = sb.String()
	return res, nil
}
