package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// idRegex matches profile IDs like 7, #7, #007
	idRegex = regexp.MustCompile(`^#?(\d+)$`)
)

// ParseID parses a profile ID string.
// Accepts various formats: 7, #7, 007 all parse to 7.
// Returns ErrInvalidID if the format is invalid or the number is zero.
func ParseID(s string) (int, error) {
	matches := idRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("%w: %q is not a valid profile ID", ErrInvalidID, s)
	}

	id, err := strconv.Atoi(matches[1])
	if err != nil || id <= NoID {
		return 0, fmt.Errorf("%w: %q has invalid number", ErrInvalidID, s)
	}

	return id, nil
}

// FormatID formats a profile ID for display (e.g. "#7").
func FormatID(id int) string {
	return "#" + strconv.Itoa(id)
}

// ParseAge parses an age field leniently.
// Unparseable or negative input yields 0.
func ParseAge(s string) int {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 0 {
		return 0
	}
	return age
}
