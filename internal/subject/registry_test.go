package subject

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stemsi/kinderbook/internal/model"
)

func TestRegistry_Resolve(t *testing.T) {
	r := NewDefaultRegistry()

	for _, in := range []string{"math", "MATH", " Math ", "mAtH"} {
		s, err := r.Resolve(in)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", in, err)
		}
		if s.Name() != Math {
			t.Fatalf("Resolve(%q): got %s", in, s.Name())
		}
	}

	if _, err := r.Resolve("history"); !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}
	if _, err := r.Resolve(""); !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject for empty name, got %v", err)
	}
}

func TestRegistry_NamesAreClosedAndOrdered(t *testing.T) {
	r := NewRegistry("math", "Math", "science")
	if got, want := r.Names(), []string{"MATH", "SCIENCE"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names: want %v, got %v", want, got)
	}
	if got := NewDefaultRegistry().Names(); !reflect.DeepEqual(got, []string{Math, English, Science}) {
		t.Fatalf("default names: got %v", got)
	}
}

func TestRegistry_CrossSubjectIndependence(t *testing.T) {
	r := NewDefaultRegistry()
	gen := model.NewIDGenerator(0)
	alex := newChild(gen, "Alex")
	math, _ := r.Resolve(Math)
	science, _ := r.Resolve(Science)

	math.Enroll(alex)
	if err := math.SetScore(alex, 90); err != nil {
		t.Fatalf("SetScore: %v", err)
	}
	science.Enroll(alex)

	if got, _ := science.Score(alex); got != Unset {
		t.Fatalf("science: expected unset, got %v", got)
	}
	if got, _ := math.Score(alex); got != 90 {
		t.Fatalf("math: expected 90, got %v", got)
	}

	want := []SubjectScore{{Subject: Math, Score: 90}, {Subject: Science, Score: Unset}}
	if got := r.ScoresOf(alex); !reflect.DeepEqual(got, want) {
		t.Fatalf("ScoresOf: want %+v, got %+v", want, got)
	}

	var names []string
	for _, s := range r.SubjectsOf(alex) {
		names = append(names, s.Name())
	}
	if !reflect.DeepEqual(names, []string{Math, Science}) {
		t.Fatalf("SubjectsOf: got %v", names)
	}
}

func TestRegistry_QueriesForUnenrolledPerson(t *testing.T) {
	r := NewDefaultRegistry()
	gen := model.NewIDGenerator(0)
	alex := newChild(gen, "Alex")

	if got := r.SubjectsOf(alex); len(got) != 0 {
		t.Fatalf("expected no subjects, got %v", got)
	}
	if got := r.ScoresOf(alex); len(got) != 0 {
		t.Fatalf("expected no scores, got %v", got)
	}
}

func TestRegistry_RehomeKeepsScores(t *testing.T) {
	r := NewDefaultRegistry()
	gen := model.NewIDGenerator(0)
	alex := newChild(gen, "Alex")
	math, _ := r.Resolve(Math)
	english, _ := r.Resolve(English)

	math.Enroll(alex)
	_ = math.SetScore(alex, 85)
	english.Enroll(alex)

	fields := alex.Fields()
	fields.ChildName = "Alexander"
	edited := alex.WithFields(fields)

	r.Rehome(alex, edited)

	if got, _ := math.Score(edited); got != 85 {
		t.Fatalf("math score lost on rehome: %v", got)
	}
	if got, _ := english.Score(edited); got != Unset {
		t.Fatalf("english score changed on rehome: %v", got)
	}
	roster := math.Roster()
	if len(roster) != 1 || roster[0].ChildName() != "Alexander" {
		t.Fatalf("roster should hold the edited record, got %+v", roster)
	}
	science, _ := r.Resolve(Science)
	if science.IsEnrolled(edited) {
		t.Fatalf("rehome enrolled into an unrelated subject")
	}
	for _, s := range r.All() {
		assertConsistent(t, s)
	}
}

func TestRegistry_UnenrollEverywhere(t *testing.T) {
	r := NewDefaultRegistry()
	gen := model.NewIDGenerator(0)
	alex := newChild(gen, "Alex")
	for _, s := range r.All() {
		s.Enroll(alex)
	}

	r.UnenrollEverywhere(alex)
	r.UnenrollEverywhere(alex)

	for _, s := range r.All() {
		if s.IsEnrolled(alex) || s.HasEntry(alex) {
			t.Fatalf("%s still holds alex", s.Name())
		}
	}
}

func TestRegistry_SubscribeTagsSubject(t *testing.T) {
	r := NewDefaultRegistry()
	gen := model.NewIDGenerator(0)
	alex := newChild(gen, "Alex")

	type event struct {
		subject string
		kind    ChangeKind
	}
	var got []event
	dispose := r.Subscribe(func(name string, c Change) {
		got = append(got, event{subject: name, kind: c.Kind})
	})

	science, _ := r.Resolve(Science)
	science.Enroll(alex)
	dispose()
	science.Unenroll(alex)

	want := []event{{subject: Science, kind: ChangeAdded}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}
