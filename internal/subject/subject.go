package subject

import (
	"cmp"
	"slices"

	"github.com/stemsi/kinderbook/internal/model"
)

// Subject owns the roster and score store of one school subject and keeps
// them in step: a child is on the roster iff it has a score entry.
type Subject struct {
	name   string
	roster map[model.PersonID]model.Person
	scores *ScoreStore
}

func newSubject(name string) *Subject {
	return &Subject{
		name:   name,
		roster: make(map[model.PersonID]model.Person),
		scores: NewScoreStore(),
	}
}

// Name returns the canonical upper-case name.
func (s *Subject) Name() string { return s.name }

func (s *Subject) String() string { return s.name }

// Enroll adds p to the roster. Enrolling twice is a no-op apart from
// refreshing the stored record; an existing score is never reset.
func (s *Subject) Enroll(p model.Person) model.Person {
	s.roster[p.ID()] = p
	if !s.scores.Contains(p.ID()) {
		s.scores.Set(p.ID(), Unset)
	}
	return p
}

// Unenroll removes p from the roster together with its score. Unenrolling a
// non-member is a no-op.
func (s *Subject) Unenroll(p model.Person) model.Person {
	delete(s.roster, p.ID())
	s.scores.Remove(p.ID())
	return p
}

// IsEnrolled reports whether p is on the roster.
func (s *Subject) IsEnrolled(p model.Person) bool {
	_, ok := s.roster[p.ID()]
	return ok
}

// SetScore records score for an enrolled child.
func (s *Subject) SetScore(p model.Person, score Score) error {
	if !s.IsEnrolled(p) {
		return notEnrolled(p.ChildName(), s.name)
	}
	if !score.IsValid() {
		return invalidScore(int(score))
	}
	s.scores.Set(p.ID(), score)
	return nil
}

// Score returns the score of p, which may be Unset.
func (s *Subject) Score(p model.Person) (Score, error) {
	score, ok := s.scores.Get(p.ID())
	if !ok {
		return 0, notEnrolled(p.ChildName(), s.name)
	}
	return score, nil
}

// HasEntry reports whether the score store holds an entry for p.
func (s *Subject) HasEntry(p model.Person) bool {
	return s.scores.Contains(p.ID())
}

// Roster returns the enrolled children ordered by ID.
func (s *Subject) Roster() []model.Person {
	out := make([]model.Person, 0, len(s.roster))
	for _, p := range s.roster {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Person) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

// Scores returns a copy of the score map.
func (s *Subject) Scores() map[model.PersonID]Score {
	return s.scores.All()
}

// Subscribe forwards every score change of this subject to fn.
func (s *Subject) Subscribe(fn func(name string, c Change)) (dispose func()) {
	return s.scores.Subscribe(func(c Change) { fn(s.name, c) })
}
