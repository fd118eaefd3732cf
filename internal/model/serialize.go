package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalProfiles renders profiles as a YAML document with a top-level
// "profiles" sequence. Profiles keep the order they are given in.
// Empty optional fields are omitted.
// Multi-line strings use block scalar style.
func MarshalProfiles(profiles []Profile) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	addIntField(doc, "count", len(profiles))

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range profiles {
		seq.Content = append(seq.Content, buildProfileNode(&profiles[i]))
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "profiles"},
		seq,
	)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profiles: %w", err)
	}
	return data, nil
}

// buildProfileNode creates a yaml.Node for a Profile.
func buildProfileNode(p *Profile) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addIntField(node, "id", p.ID)
	addStringField(node, "name", p.Name)
	addStringField(node, "email", p.Email)
	if p.Phone != "" {
		addStringField(node, "phone", p.Phone)
	}
	addIntField(node, "age", p.Age)
	if p.Gender != "" {
		addStringField(node, "gender", string(p.Gender))
	}
	if p.Hobbies.Len() > 0 {
		names := make([]string, 0, p.Hobbies.Len())
		for _, h := range p.Hobbies.List() {
			names = append(names, h.String())
		}
		addStringSliceField(node, "hobbies", names)
	}
	addBoolField(node, "notifications_enabled", p.NotificationsEnabled)
	addBoolField(node, "favorite", p.IsFavorite)
	if p.Bio != "" {
		addMultilineStringField(node, "bio", p.Bio)
	}

	return node
}

// EditableProfile is the shape of a profile presented for editing in
// $EDITOR or assembled from command flags. It leaves out the ID, which is
// not editable. The validate tags expect a normalized profile.
type EditableProfile struct {
	Name          string   `yaml:"name" validate:"required"`
	Email         string   `yaml:"email" validate:"required"`
	Phone         string   `yaml:"phone"`
	Age           int      `yaml:"age"`
	Gender        string   `yaml:"gender" validate:"omitempty,oneof=male female other"`
	Hobbies       []string `yaml:"hobbies" validate:"dive,oneof=reading coding travelling traveling"`
	Notifications bool     `yaml:"notifications"`
	Favorite      bool     `yaml:"favorite"`
	Bio           string   `yaml:"bio"`
}

// ToEditable converts p to its editable form.
func ToEditable(p Profile) EditableProfile {
	e := EditableProfile{
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		Age:           p.Age,
		Gender:        string(p.Gender),
		Hobbies:       []string{},
		Notifications: p.NotificationsEnabled,
		Favorite:      p.IsFavorite,
		Bio:           p.Bio,
	}
	for _, h := range p.Hobbies.List() {
		e.Hobbies = append(e.Hobbies, h.String())
	}
	return e
}

// Normalize trims the contact fields and lowercases gender and hobbies.
// Blank hobbies are dropped. The bio is left as written.
func (e *EditableProfile) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Gender = strings.ToLower(strings.TrimSpace(e.Gender))

	hobbies := make([]string, 0, len(e.Hobbies))
	for _, h := range e.Hobbies {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hobbies = append(hobbies, h)
		}
	}
	e.Hobbies = hobbies
}

// Apply returns base with every editable field replaced by the values in e.
// The ID of base is kept. Negative ages become 0. An empty gender leaves the
// profile without one.
func (e EditableProfile) Apply(base Profile) (Profile, error) {
	var gender Gender
	if e.Gender != "" {
		g, err := ParseGender(e.Gender)
		if err != nil {
			return Profile{}, err
		}
		gender = g
	}
	hobbies, err := ParseHobbies(strings.Join(e.Hobbies, ","))
	if err != nil {
		return Profile{}, err
	}

	age := e.Age
	if age < 0 {
		age = 0
	}

	base.Name = e.Name
	base.Email = e.Email
	base.Phone = e.Phone
	base.Age = age
	base.Gender = gender
	base.Hobbies = hobbies
	base.NotificationsEnabled = e.Notifications
	base.IsFavorite = e.Favorite
	base.Bio = e.Bio
	return base, nil
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addIntField(node *yaml.Node, key string, value int) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", value), Tag: "!!int"},
	)
}

func addBoolField(node *yaml.Node, key string, value bool) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%t", value), Tag: "!!bool"},
	)
}

func addStringSliceField(node *yaml.Node, key string, values []string) {
	seqNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		seqNode.Content = append(seqNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: v},
		)
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		seqNode,
	)
}

func addMultilineStringField(node *yaml.Node, key, value string) {
	// Literal block style for multi-line strings
	style := yaml.LiteralStyle
	if !strings.Contains(value, "\n") {
		style = 0
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: style, Tag: "!!str"},
	)
}
