package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hobby is one of a closed set of hobbies.
type Hobby uint8

const (
	HobbyReading Hobby = 1 << iota
	HobbyCoding
	HobbyTravelling
)

// Hobbies lists every known hobby in canonical order.
var Hobbies = []Hobby{HobbyReading, HobbyCoding, HobbyTravelling}

var hobbyNames = map[Hobby]string{
	HobbyReading:    "reading",
	HobbyCoding:     "coding",
	HobbyTravelling: "travelling",
}

// String returns the lowercase name of the hobby.
func (h Hobby) String() string {
	if name, ok := hobbyNames[h]; ok {
		return name
	}
	return fmt.Sprintf("hobby(%d)", uint8(h))
}

// ParseHobby parses a hobby name case-insensitively.
// "traveling" is accepted as an alias for travelling.
func ParseHobby(s string) (Hobby, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "traveling" {
		name = "travelling"
	}
	for _, h := range Hobbies {
		if hobbyNames[h] == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown hobby %q (expected %s)", s, HobbyChoices())
}

// HobbyChoices returns the known hobbies as readable text:
// "reading, coding or travelling".
func HobbyChoices() string {
	names := make([]string, len(Hobbies))
	for i, h := range Hobbies {
		names[i] = h.String()
	}
	return choiceList(names)
}

// HobbySet is an unordered set of hobbies. The zero value is the empty set.
// Being a bitmask, a hobby cannot appear twice.
type HobbySet uint8

// NewHobbySet builds a set from the given hobbies.
func NewHobbySet(hobbies ...Hobby) HobbySet {
	var s HobbySet
	for _, h := range hobbies {
		s = s.With(h)
	}
	return s
}

// Has reports whether h is in the set.
func (s HobbySet) Has(h Hobby) bool {
	return s&HobbySet(h) != 0
}

// With returns the set with h added.
func (s HobbySet) With(h Hobby) HobbySet {
	return s | HobbySet(h)
}

// Len returns the number of hobbies in the set.
func (s HobbySet) Len() int {
	n := 0
	for _, h := range Hobbies {
		if s.Has(h) {
			n++
		}
	}
	return n
}

// List returns the hobbies in canonical order.
func (s HobbySet) List() []Hobby {
	var out []Hobby
	for _, h := range Hobbies {
		if s.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// String returns a comma-separated list of hobby names, or "" for the empty set.
func (s HobbySet) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, h := range list {
		names[i] = h.String()
	}
	return strings.Join(names, ", ")
}

// ParseHobbies parses a comma-separated list of hobby names.
// Blank entries are skipped; repeated names collapse.
func ParseHobbies(s string) (HobbySet, error) {
	var set HobbySet
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		h, err := ParseHobby(part)
		if err != nil {
			return 0, err
		}
		set = set.With(h)
	}
	return set, nil
}

// MarshalYAML encodes the set as a list of hobby names.
func (s HobbySet) MarshalYAML() (interface{}, error) {
	names := []string{}
	for _, h := range s.List() {
		names = append(names, h.String())
	}
	return names, nil
}

// UnmarshalYAML decodes a list of hobby names.
func (s *HobbySet) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return fmt.Errorf("hobbies must be a list: %w", err)
	}
	var set HobbySet
	for _, name := range names {
		h, err := ParseHobby(name)
		if err != nil {
			return err
		}
		set = set.With(h)
	}
	*s = set
	return nil
}
