package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/subject"
)

// SetScore records one grade in one subject for the targeted children.
// Children not enrolled in the subject are skipped.
type SetScore struct {
	Targets Targets
	Subject *subject.Subject
	Score   subject.Score
}

func (c SetScore) Name() string { return "setscore" }

func (c SetScore) Execute(m Model) (Result, error) {
	if !c.Score.IsDefined() {
		return Result{}, fmt.Errorf("%w: got %d", subject.ErrInvalidScore, int(c.Score))
	}
	persons, err := c.Targets.resolve(m)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var sb strings.Builder
	for _, p := range persons {
		err := c.Subject.SetScore(p, c.Score)
		switch {
		case errors.Is(err, subject.ErrNotEnrolled):
			res.Outcomes = append(res.Outcomes, Outcome{
				PersonID: p.ID(), Child: p.ChildName(), Subject: c.Subject.Name(), Kind: OutcomeSkipped,
			})
			fmt.Fprintf(&sb, "%s not enrolled in Subject: %s, skipping...\n", model.FormatShort(p), c.Subject)
		case err != nil:
			return res, err
		default:
			res.Outcomes = append(res.Outcomes, outcome(p, c.Subject, OutcomeSet, c.Score))
			fmt.Fprintf(&sb, "Grade of %s in Subject: %s set to %s\n", model.FormatShort(p), c.Subject, c.Score)
		}
	}

	res.Feedback = strings.TrimSuffix(sb.String(), "\n")
	res.Changed = res.Count(OutcomeSet) > 0
	return res, nil
}
