package model

// PersonPatch describes an edit. Nil fields keep the current value.
type PersonPatch struct {
	ChildName  *string
	ParentName *string
	Phone      *string
	Email      *string
	Address    *string
	Allergies  *[]string
	Tags       *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p PersonPatch) IsEmpty() bool {
	return p.ChildName == nil && p.ParentName == nil && p.Phone == nil &&
		p.Email == nil && p.Address == nil && p.Allergies == nil && p.Tags == nil
}

// Apply returns base with every non-nil field of the patch replaced.
func (p PersonPatch) Apply(base PersonFields) PersonFields {
	out := base.clone()
	if p.ChildName != nil {
		out.ChildName = *p.ChildName
	}
	if p.ParentName != nil {
		out.ParentName = *p.ParentName
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Address != nil {
		out.Address = *p.Address
	}
	if p.Allergies != nil {
		out.Allergies = copyStrings(*p.Allergies)
	}
	if p.Tags != nil {
		out.Tags = copyStrings(*p.Tags)
	}
	return out
}
