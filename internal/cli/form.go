package cli

import (
	"strings"

	"github.com/jacksmith/profiles/internal/model"
)

// ProfileForm holds profile fields as entered by the user. Nil fields are
// left as they are on the base profile passed to Build.
type ProfileForm struct {
	Name          *string
	Email         *string
	Phone         *string
	Age           *string
	Gender        *string
	Hobbies       *string
	Notifications *bool
	Favorite      *bool
	Bio           *string
}

// Empty reports whether the form sets no field at all.
func (f ProfileForm) Empty() bool {
	return f.Name == nil && f.Email == nil && f.Phone == nil && f.Age == nil &&
		f.Gender == nil && f.Hobbies == nil && f.Notifications == nil &&
		f.Favorite == nil && f.Bio == nil
}

// Build applies the form to base and validates the result. Text fields are
// trimmed, except the bio. Name and email must not be blank. An unparseable
// or negative age becomes 0. All validation failures are reported together
// as ValidationErrors, in which case base is returned unchanged.
func (f ProfileForm) Build(base model.Profile) (model.Profile, error) {
	e := model.ToEditable(base)

	if f.Name != nil {
		e.Name = *f.Name
	}
	if f.Email != nil {
		e.Email = *f.Email
	}
	if f.Phone != nil {
		e.Phone = *f.Phone
	}
	if f.Age != nil {
		e.Age = model.ParseAge(*f.Age)
	}
	if f.Gender != nil {
		e.Gender = *f.Gender
	}
	if f.Hobbies != nil {
		e.Hobbies = strings.Split(*f.Hobbies, ",")
	}
	if f.Notifications != nil {
		e.Notifications = *f.Notifications
	}
	if f.Favorite != nil {
		e.Favorite = *f.Favorite
	}
	if f.Bio != nil {
		e.Bio = *f.Bio
	}

	return ApplyEditable(base, e)
}

// ApplyEditable normalizes and validates e, then applies it to base.
func ApplyEditable(base model.Profile, e model.EditableProfile) (model.Profile, error) {
	e.Normalize()
	if err := ValidateProfile(e); err != nil {
		return base, err
	}

	p, err := e.Apply(base)
	if err != nil {
		return base, &ValidationError{Message: err.Error()}
	}
	return p, nil
}
