// Package model defines the core data structures for profiles.
package model

import (
	"fmt"
	"strings"
)

// NoID is the ID of a profile that has not been stored yet.
// The store never issues it.
const NoID = 0

// Gender is one of a closed set of values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists every valid gender in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Label returns the capitalized display name ("Male", "Female", "Other").
// Unknown values render as "-".
func (g Gender) Label() string {
	if !g.Valid() {
		return "-"
	}
	s := string(g)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseGender parses a gender name case-insensitively.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("unknown gender %q (expected %s)", s, GenderChoices())
	}
	return g, nil
}

// GenderChoices returns the valid genders as readable text:
// "male, female or other".
func GenderChoices() string {
	names := make([]string, len(Genders))
	for i, g := range Genders {
		names[i] = string(g)
	}
	return choiceList(names)
}

// choiceList joins names as "a, b or c".
func choiceList(names []string) string {
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// Profile is a single user profile record.
//
// Profiles are values: changing one means building a new Profile and handing
// it to the store, which publishes a new snapshot.
type Profile struct {
	ID                   int      `yaml:"id"`
	Name                 string   `yaml:"name"`
	Email                string   `yaml:"email"`
	Phone                string   `yaml:"phone,omitempty"`
	Age                  int      `yaml:"age"`
	Gender               Gender   `yaml:"gender"`
	Hobbies              HobbySet `yaml:"hobbies,omitempty"`
	NotificationsEnabled bool     `yaml:"notifications_enabled"`
	IsFavorite           bool     `yaml:"favorite"`
	Bio                  string   `yaml:"bio,omitempty"`
}

// Stored reports whether the profile has been assigned an ID by the store.
func (p Profile) Stored() bool {
	return p.ID != NoID
}

// WithFavorite returns a copy of p with IsFavorite set to fav.
func (p Profile) WithFavorite(fav bool) Profile {
	p.IsFavorite = fav
	return p
}

// DisplayName returns the name to show in list views.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "(unnamed)"
}
