package model

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// PersonID is the stable identity key of a child record. It is assigned once
// when the record is created and carried unchanged through every edit.
type PersonID int64

func (id PersonID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IDGenerator hands out monotonically increasing person IDs.
type IDGenerator struct {
	next atomic.Int64
}

// NewIDGenerator creates a generator whose first ID is start.
func NewIDGenerator(start PersonID) *IDGenerator {
	g := &IDGenerator{}
	g.next.Store(int64(start))
	return g
}

// Next returns a fresh ID.
func (g *IDGenerator) Next() PersonID {
	return PersonID(g.next.Add(1) - 1)
}

// Observe makes sure IDs handed out later are greater than id.
// Used when records with known IDs are loaded from storage.
func (g *IDGenerator) Observe(id PersonID) {
	for {
		cur := g.next.Load()
		if int64(id) < cur {
			return
		}
		if g.next.CompareAndSwap(cur, int64(id)+1) {
			return
		}
	}
}

// Peek returns the ID the next call to Next would return.
func (g *IDGenerator) Peek() PersonID {
	return PersonID(g.next.Load())
}

// PersonFields holds the display and contact fields of a child record.
type PersonFields struct {
	ChildName  string   `json:"child_name" validate:"required,personname"`
	ParentName string   `json:"parent_name" validate:"required,personname"`
	Phone      string   `json:"parent_phone" validate:"required,phone"`
	Email      string   `json:"parent_email" validate:"required,email"`
	Address    string   `json:"address" validate:"required,max=200"`
	Allergies  []string `json:"allergies" validate:"dive,allergy"`
	Tags       []string `json:"tags" validate:"dive,tagname"`
}

// Normalize trims every field, collapses runs of whitespace inside names and
// drops duplicate allergies and tags (compared case-insensitively).
func (f PersonFields) Normalize() PersonFields {
	return PersonFields{
		ChildName:  collapseSpaces(f.ChildName),
		ParentName: collapseSpaces(f.ParentName),
		Phone:      strings.TrimSpace(f.Phone),
		Email:      strings.TrimSpace(f.Email),
		Address:    strings.TrimSpace(f.Address),
		Allergies:  uniqueFold(f.Allergies),
		Tags:       uniqueFold(f.Tags),
	}
}

func (f PersonFields) clone() PersonFields {
	f.Allergies = copyStrings(f.Allergies)
	f.Tags = copyStrings(f.Tags)
	return f
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Person is an immutable child record. Editing produces a new Person that
// keeps the original ID; equality is defined by ID alone.
type Person struct {
	id     PersonID
	fields PersonFields
}

// NewPerson creates a record with a fresh ID from gen.
func NewPerson(gen *IDGenerator, fields PersonFields) Person {
	return Person{id: gen.Next(), fields: fields.Normalize().clone()}
}

// RestorePerson rebuilds a record with a known ID and advances gen past it.
func RestorePerson(gen *IDGenerator, id PersonID, fields PersonFields) Person {
	gen.Observe(id)
	return Person{id: id, fields: fields.Normalize().clone()}
}

// WithFields returns a replacement record carrying the same ID.
func (p Person) WithFields(fields PersonFields) Person {
	return Person{id: p.id, fields: fields.Normalize().clone()}
}

func (p Person) ID() PersonID { return p.id }
func (p Person) ChildName() string { return p.fields.ChildName }
func (p Person) ParentName() string { return p.fields.ParentName }
func (p Person) Phone() string { return p.fields.Phone }
func (p Person) Email() string { return p.fields.Email }
func (p Person) Address() string { return p.fields.Address }
func (p Person) Allergies() []string { return copyStrings(p.fields.Allergies) }
func (p Person) Tags() []string { return copyStrings(p.fields.Tags) }
func (p Person) Fields() PersonFields { return p.fields.clone() }
func (p Person) Equal(o Person) bool { return p.id == o.id }

// IsSamePerson reports whether both records describe the same child by
// name, ignoring case. It is a weaker notion than Equal and is only used to
// reject duplicate entries in the person list.
func (p Person) IsSamePerson(o Person) bool {
	return strings.EqualFold(p.fields.ChildName, o.fields.ChildName) &&
		strings.EqualFold(p.fields.ParentName, o.fields.ParentName)
}

// PersonView is the JSON shape of a Person.
type PersonView struct {
	ID PersonID `json:"id"`
	PersonFields
}

// View returns the JSON shape of p.
func (p Person) View() PersonView {
	return PersonView{ID: p.id, PersonFields: p.Fields()}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func uniqueFold(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
