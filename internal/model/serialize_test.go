package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalProfiles(t *testing.T) {
	profiles := []Profile{
		{
			ID:                   1,
			Name:                 "Ana",
			Email:                "a@x.com",
			Phone:                "5551234",
			Age:                  31,
			Gender:               GenderFemale,
			Hobbies:              NewHobbySet(HobbyReading, HobbyCoding),
			NotificationsEnabled: true,
			IsFavorite:           true,
			Bio:                  "Line one\nLine two",
		},
		{
			ID:    2,
			Name:  "Bo",
			Email: "b@x.com",
		},
	}

	data, err := MarshalProfiles(profiles)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "count: 2")
	assert.Contains(t, content, "id: 1")
	assert.Contains(t, content, "name: Ana")
	assert.Contains(t, content, "gender: female")
	assert.Contains(t, content, "hobbies: [reading, coding]")
	assert.Contains(t, content, "favorite: true")
	// Numeric-looking strings stay strings
	assert.Contains(t, content, `phone: "5551234"`)
	// Multi-line bio uses literal block style
	assert.Contains(t, content, "bio: |-")

	// Order is preserved
	assert.Less(t, strings.Index(content, "name: Ana"), strings.Index(content, "name: Bo"))

	// Optional fields omitted for the second profile
	second := content[strings.Index(content, "name: Bo"):]
	assert.NotContains(t, second, "phone:")
	assert.NotContains(t, second, "hobbies:")
	assert.NotContains(t, second, "bio:")

	// Output is valid YAML that decodes back into profiles
	var decoded struct {
		Count    int       `yaml:"count"`
		Profiles []Profile `yaml:"profiles"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Count)
	assert.Equal(t, profiles, decoded.Profiles)
}

func TestMarshalProfilesEmpty(t *testing.T) {
	data, err := MarshalProfiles(nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), "count: 0")
	assert.Contains(t, string(data), "profiles: []")
}

func TestEditableProfileApply(t *testing.T) {
	base := Profile{
		ID:      4,
		Name:    "Old",
		Email:   "old@x.com",
		Gender:  GenderMale,
		Hobbies: NewHobbySet(HobbyCoding),
	}

	e := ToEditable(base)
	assert.Equal(t, "Old", e.Name)
	assert.Equal(t, "male", e.Gender)
	assert.Equal(t, []string{"coding"}, e.Hobbies)

	e.Name = "New"
	e.Gender = "Other"
	e.Hobbies = []string{"reading", "travelling"}
	e.Age = -2
	e.Favorite = true

	got, err := e.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, 4, got.ID, "ID is not editable")
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, GenderOther, got.Gender)
	assert.Equal(t, NewHobbySet(HobbyReading, HobbyTravelling), got.Hobbies)
	assert.Equal(t, 0, got.Age)
	assert.True(t, got.IsFavorite)
	assert.Equal(t, "Old", base.Name, "base is not modified")
}

func TestEditableProfileApplyErrors(t *testing.T) {
	e := ToEditable(Profile{Gender: GenderOther})

	bad := e
	bad.Gender = "unknown"
	_, err := bad.Apply(Profile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gender")

	bad = e
	bad.Hobbies = []string{"sleeping"}
	_, err = bad.Apply(Profile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sleeping")
}

func TestEditableProfileYAMLRoundTrip(t *testing.T) {
	p := Profile{
		ID:      9,
		Name:    "Ana",
		Email:   "a@x.com",
		Gender:  GenderFemale,
		Hobbies: NewHobbySet(HobbyTravelling),
		Bio:     "hi",
	}

	data, err := yaml.Marshal(ToEditable(p))
	require.NoError(t, err)

	var e EditableProfile
	require.NoError(t, yaml.Unmarshal(data, &e))
	got, err := e.Apply(Profile{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestEditableProfileNormalize(t *testing.T) {
	e := EditableProfile{
		Name:    "  Ana ",
		Email:   " a@x",
		Phone:   " 555 ",
		Gender:  " Female",
		Hobbies: []string{" Coding", "", "  ", "TRAVELING"},
		Bio:     "  as written\n",
	}
	e.Normalize()

	assert.Equal(t, EditableProfile{
		Name:    "Ana",
		Email:   "a@x",
		Phone:   "555",
		Gender:  "female",
		Hobbies: []string{"coding", "traveling"},
		Bio:     "  as written\n",
	}, e)
}

func TestEditableProfileApplyWithoutGender(t *testing.T) {
	got, err := EditableProfile{Name: "Ana", Email: "a@x"}.Apply(Profile{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, Gender(""), got.Gender)
	assert.Equal(t, 2, got.ID)
}
