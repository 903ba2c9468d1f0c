package subject

import (
	"strings"

	"github.com/stemsi/kinderbook/internal/model"
)

// Default subject names, in display order.
const (
	Math    = "MATH"
	English = "ENGLISH"
	Science = "SCIENCE"
)

// Registry is the closed set of subjects of one application instance.
// It is created once at start-up and handed to everything that needs it.
type Registry struct {
	subjects []*Subject
}

// NewRegistry creates a registry with the given subject names. Names are
// upper-cased; duplicates (ignoring case) are dropped.
func NewRegistry(names ...string) *Registry {
	r := &Registry{}
	for _, n := range names {
		n = strings.ToUpper(strings.TrimSpace(n))
		if n == "" || r.lookup(n) != nil {
			continue
		}
		r.subjects = append(r.subjects, newSubject(n))
	}
	return r
}

// NewDefaultRegistry creates the MATH, ENGLISH, SCIENCE registry.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Math, English, Science)
}

// All returns every subject in declaration order.
func (r *Registry) All() []*Subject {
	return append([]*Subject(nil), r.subjects...)
}

// Names returns the canonical subject names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.subjects))
	for i, s := range r.subjects {
		out[i] = s.name
	}
	return out
}

// Resolve finds a subject by name, ignoring case and surrounding spaces.
func (r *Registry) Resolve(name string) (*Subject, error) {
	if s := r.lookup(strings.TrimSpace(name)); s != nil {
		return s, nil
	}
	return nil, unknownSubject(name)
}

func (r *Registry) lookup(name string) *Subject {
	for _, s := range r.subjects {
		if strings.EqualFold(s.name, name) {
			return s
		}
	}
	return nil
}

// SubjectsOf returns the subjects p is enrolled in.
func (r *Registry) SubjectsOf(p model.Person) []*Subject {
	var out []*Subject
	for _, s := range r.subjects {
		if s.IsEnrolled(p) {
			out = append(out, s)
		}
	}
	return out
}

// SubjectScore pairs a subject name with a score.
type SubjectScore struct {
	Subject string `json:"subject"`
	Score   Score  `json:"score"`
}

// ScoresOf returns the score of p in every subject it is enrolled in,
// Unset included.
func (r *Registry) ScoresOf(p model.Person) []SubjectScore {
	var out []SubjectScore
	for _, s := range r.subjects {
		if !s.IsEnrolled(p) {
			continue
		}
		score, err := s.Score(p)
		if err != nil {
			continue
		}
		out = append(out, SubjectScore{Subject: s.name, Score: score})
	}
	return out
}

// Rehome moves every enrollment of old onto replacement, which must carry
// the same ID, keeping the recorded score.
func (r *Registry) Rehome(old, replacement model.Person) {
	for _, s := range r.subjects {
		if !s.IsEnrolled(old) {
			continue
		}
		score, err := s.Score(old)
		if err != nil {
			score = Unset
		}
		s.Unenroll(old)
		s.Enroll(replacement)
		_ = s.SetScore(replacement, score)
	}
}

// UnenrollEverywhere removes p from every subject.
func (r *Registry) UnenrollEverywhere(p model.Person) {
	for _, s := range r.subjects {
		s.Unenroll(p)
	}
}

// Subscribe forwards score changes of every subject to fn.
func (r *Registry) Subscribe(fn func(subject string, c Change)) (dispose func()) {
	disposers := make([]func(), 0, len(r.subjects))
	for _, s := range r.subjects {
		disposers = append(disposers, s.Subscribe(fn))
	}
	return func() {
		for _, d := range disposers {
			d()
		}
	}
}
