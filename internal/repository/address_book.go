package repository

import (
	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/subject"
)

// AddressBook bundles the person list, the subject registry and the ID
// generator into the state commands operate on.
type AddressBook struct {
	persons  *PersonRepository
	registry *subject.Registry
	ids      *model.IDGenerator
}

// NewAddressBook creates an empty address book over registry. IDs start at 1.
func NewAddressBook(registry *subject.Registry) *AddressBook {
	return &AddressBook{
		persons:  NewPersonRepository(),
		registry: registry,
		ids:      model.NewIDGenerator(1),
	}
}

func (b *AddressBook) FilteredPersons() []model.Person { return b.persons.Filtered() }
func (b *AddressBook) AllPersons() []model.Person { return b.persons.All() }
func (b *AddressBook) AddPerson(p model.Person) error { return b.persons.Add(p) }
func (b *AddressBook) SetPerson(target, edited model.Person) error {
	return b.persons.Set(target, edited)
}
func (b *AddressBook) DeletePerson(p model.Person) error { return b.persons.Delete(p) }
func (b *AddressBook) HasPerson(p model.Person) bool { return b.persons.Has(p) }
func (b *AddressBook) UpdateFilter(pred func(model.Person) bool) { b.persons.SetFilter(pred) }
func (b *AddressBook) Registry() *subject.Registry { return b.registry }
func (b *AddressBook) IDs() *model.IDGenerator { return b.ids }

// PersonByID looks up a child by identity key.
func (b *AddressBook) PersonByID(id model.PersonID) (model.Person, error) {
	return b.persons.GetByID(id)
}

// Replace swaps in a freshly loaded person list. Every subject is emptied;
// the caller re-enrolls from the loaded data.
func (b *AddressBook) Replace(persons []model.Person) {
	for _, p := range b.persons.All() {
		b.registry.UnenrollEverywhere(p)
	}
	b.persons.Reset(persons)
	for _, p := range persons {
		b.ids.Observe(p.ID())
	}
}
