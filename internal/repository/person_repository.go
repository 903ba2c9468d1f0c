package repository

import (
	"errors"

	"github.com/stemsi/kinderbook/internal/model"
)

var (
	ErrDuplicatePerson = errors.New("this child already exists in the address book")
	ErrPersonNotFound  = errors.New("child not found")
)

// PersonRepository is the in-memory person list together with the filter
// that decides which persons are currently displayed. Commands address
// persons by their position in the displayed list.
type PersonRepository struct {
	persons []model.Person
	filter  func(model.Person) bool
}

// NewPersonRepository creates an empty list that displays everyone.
func NewPersonRepository() *PersonRepository {
	return &PersonRepository{}
}

// All returns every person in insertion order.
func (r *PersonRepository) All() []model.Person {
	return append([]model.Person(nil), r.persons...)
}

// Filtered returns the displayed persons in insertion order.
func (r *PersonRepository) Filtered() []model.Person {
	if r.filter == nil {
		return r.All()
	}
	out := make([]model.Person, 0, len(r.persons))
	for _, p := range r.persons {
		if r.filter(p) {
			out = append(out, p)
		}
	}
	return out
}

// SetFilter changes the displayed list. A nil filter displays everyone.
func (r *PersonRepository) SetFilter(filter func(model.Person) bool) {
	r.filter = filter
}

// Has reports whether a person with the same names is already listed.
func (r *PersonRepository) Has(p model.Person) bool {
	for _, q := range r.persons {
		if q.IsSamePerson(p) {
			return true
		}
	}
	return false
}

// HasOther is like Has but ignores the record sharing p's ID.
func (r *PersonRepository) HasOther(p model.Person) bool {
	for _, q := range r.persons {
		if !q.Equal(p) && q.IsSamePerson(p) {
			return true
		}
	}
	return false
}

// GetByID looks a person up by identity key.
func (r *PersonRepository) GetByID(id model.PersonID) (model.Person, error) {
	for _, p := range r.persons {
		if p.ID() == id {
			return p, nil
		}
	}
	return model.Person{}, ErrPersonNotFound
}

// Add appends p to the list.
func (r *PersonRepository) Add(p model.Person) error {
	if r.Has(p) {
		return ErrDuplicatePerson
	}
	r.persons = append(r.persons, p)
	return nil
}

// Set replaces target with edited in place.
func (r *PersonRepository) Set(target, edited model.Person) error {
	if r.HasOther(edited) {
		return ErrDuplicatePerson
	}
	for i, p := range r.persons {
		if p.Equal(target) {
			r.persons[i] = edited
			return nil
		}
	}
	return ErrPersonNotFound
}

// Delete removes p from the list.
func (r *PersonRepository) Delete(p model.Person) error {
	for i, q := range r.persons {
		if q.Equal(p) {
			r.persons = append(r.persons[:i], r.persons[i+1:]...)
			return nil
		}
	}
	return ErrPersonNotFound
}

// Reset replaces the whole list and clears the filter.
func (r *PersonRepository) Reset(persons []model.Person) {
	r.persons = append([]model.Person(nil), persons...)
	r.filter = nil
}
