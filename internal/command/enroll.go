package command

import (
	"fmt"
	"strings"

	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/subject"
)

// Enroll puts the targeted children into every listed subject.
type Enroll struct {
	Targets  Targets
	Subjects []*subject.Subject
}

func (c Enroll) Name() string { return "enroll" }

func (c Enroll) Execute(m Model) (Result, error) {
	persons, err := c.Targets.resolve(m)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var sb strings.Builder
	for _, p := range persons {
		for _, s := range c.Subjects {
			if s.IsEnrolled(p) {
				score, _ := s.Score(p)
				res.Outcomes = append(res.Outcomes, outcome(p, s, OutcomeSkipped, score))
				fmt.Fprintf(&sb, "%s already enrolled in Subject: %s, skipping...\n", model.FormatShort(p), s)
				continue
			}
			s.Enroll(p)
			res.Outcomes = append(res.Outcomes, outcome(p, s, OutcomeEnrolled, subject.Unset))
			fmt.Fprintf(&sb, "Enrolled Child: %s in Subject: %s\n", model.FormatShort(p), s)
		}
	}

	enrolled := res.Count(OutcomeEnrolled)
	if enrolled == 0 {
		sb.WriteString("All selected children are already enrolled!")
	} else {
		fmt.Fprintf(&sb, "%d enrolled, %d skipped.", enrolled, res.Count(OutcomeSkipped))
	}
	res.Feedback = sb.String()
	res.Changed = enrolled > 0
	return res, nil
}

// Unenroll removes the targeted children from every listed subject together
// with their scores.
type Unenroll struct {
	Targets  Targets
	Subjects []*subject.Subject
}

func (c Unenroll) Name() string { return "unenroll" }

func (c Unenroll) Execute(m Model) (Result, error) {
	persons, err := c.Targets.resolve(m)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var sb strings.Builder
	for _, p := range persons {
		for _, s := range c.Subjects {
			if !s.IsEnrolled(p) {
				res.Outcomes = append(res.Outcomes, Outcome{
					PersonID: p.ID(), Child: p.ChildName(), Subject: s.Name(), Kind: OutcomeSkipped,
				})
				fmt.Fprintf(&sb, "%s not enrolled in Subject: %s, skipping...\n", model.FormatShort(p), s)
				continue
			}
			s.Unenroll(p)
			res.Outcomes = append(res.Outcomes, Outcome{
				PersonID: p.ID(), Child: p.ChildName(), Subject: s.Name(), Kind: OutcomeUnenrolled,
			})
			fmt.Fprintf(&sb, "Unenrolled Child: %s in Subject: %s\n", model.FormatShort(p), s)
		}
	}

	unenrolled := res.Count(OutcomeUnenrolled)
	if unenrolled == 0 {
		sb.WriteString("All selected children are already unenrolled")
	} else {
		fmt.Fprintf(&sb, "%d unenrolled, %d skipped.", unenrolled, res.Count(OutcomeSkipped))
	}
	res.Feedback = sb.String()
	res.Changed = unenrolled > 0
	return res, nil
}

func outcome(p model.Person, s *subject.Subject, kind OutcomeKind, score subject.Score) Outcome {
	return Outcome{
		PersonID: p.ID(),
		Child:    p.ChildName(),
		Subject:  s.Name(),
		Kind:     kind,
		Score:    scorePtr(score),
	}
}
