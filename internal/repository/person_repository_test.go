package repository

import (
	"errors"
	"testing"

	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/subject"
)

func child(gen *model.IDGenerator, name, parent string) model.Person {
	return model.NewPerson(gen, model.PersonFields{
		ChildName:  name,
		ParentName: parent,
		Phone:      "91234567",
		Email:      "parent@example.com",
		Address:    "Blk 1 Example Street",
	})
}

func TestPersonRepository_AddRejectsDuplicates(t *testing.T) {
	gen := model.NewIDGenerator(1)
	r := NewPersonRepository()

	if err := r.Add(child(gen, "Alex", "Sam")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := r.Add(child(gen, "ALEX", "sam"))
	if !errors.Is(err, ErrDuplicatePerson) {
		t.Fatalf("expected ErrDuplicatePerson, got %v", err)
	}
	if err := r.Add(child(gen, "Alex", "Jordan")); err != nil {
		t.Fatalf("same child name with another parent should be allowed: %v", err)
	}
	if got := len(r.All()); got != 2 {
		t.Fatalf("expected 2 persons, got %d", got)
	}
}

func TestPersonRepository_SetKeepsPosition(t *testing.T) {
	gen := model.NewIDGenerator(1)
	r := NewPersonRepository()
	a, b := child(gen, "Alex", "Sam"), child(gen, "Bernice", "Yu")
	_ = r.Add(a)
	_ = r.Add(b)

	fields := a.Fields()
	fields.Phone = "99999999"
	if err := r.Set(a, a.WithFields(fields)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	all := r.All()
	if all[0].Phone() != "99999999" || all[0].ID() != a.ID() {
		t.Fatalf("edit not applied in place: %+v", all[0].View())
	}

	fields = a.Fields()
	fields.ChildName, fields.ParentName = "Bernice", "Yu"
	if err := r.Set(a, a.WithFields(fields)); !errors.Is(err, ErrDuplicatePerson) {
		t.Fatalf("expected ErrDuplicatePerson, got %v", err)
	}
}

func TestPersonRepository_FilterAndDelete(t *testing.T) {
	gen := model.NewIDGenerator(1)
	r := NewPersonRepository()
	a, b := child(gen, "Alex", "Sam"), child(gen, "Bernice", "Yu")
	_ = r.Add(a)
	_ = r.Add(b)

	r.SetFilter(model.KeywordPredicate{ChildName: []string{"bernice"}}.Match)
	if got := r.Filtered(); len(got) != 1 || !got[0].Equal(b) {
		t.Fatalf("unexpected filtered list: %v", got)
	}

	if err := r.Delete(b); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(b); !errors.Is(err, ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
	if got := r.Filtered(); len(got) != 0 {
		t.Fatalf("expected empty filtered list, got %v", got)
	}

	r.SetFilter(nil)
	if got := r.Filtered(); len(got) != 1 {
		t.Fatalf("expected 1 person after clearing filter, got %d", len(got))
	}
}

func TestAddressBook_ReplaceResetsSubjects(t *testing.T) {
	book := NewAddressBook(subject.NewDefaultRegistry())
	a := child(book.IDs(), "Alex", "Sam")
	_ = book.AddPerson(a)
	math, _ := book.Registry().Resolve(subject.Math)
	math.Enroll(a)

	restored := model.RestorePerson(book.IDs(), 40, a.Fields())
	book.Replace([]model.Person{restored})

	if len(math.Roster()) != 0 {
		t.Fatalf("replace kept old enrollments")
	}
	if got, err := book.PersonByID(40); err != nil || !got.Equal(restored) {
		t.Fatalf("PersonByID: %v %v", got.View(), err)
	}
	if next := book.IDs().Next(); next <= 40 {
		t.Fatalf("generator not advanced past restored ID: %d", next)
	}
}
