// Package cli provides CLI infrastructure for profiles.
package cli

import (
	"fmt"
	"sort"
	"strings"
)

// MatchCommand finds a unique command from a prefix.
// words maps every accepted word (command names and aliases) to the
// canonical command name. A prefix is ambiguous only if its matches resolve
// to more than one canonical command.
// Returns the canonical command or an error if ambiguous or no match.
func MatchCommand(prefix string, words map[string]string) (string, error) {
	prefix = strings.ToLower(prefix)

	// First check for exact match
	for word, cmd := range words {
		if strings.ToLower(word) == prefix {
			return cmd, nil
		}
	}

	// Check for prefix match
	matched := map[string]bool{}
	for word, cmd := range words {
		if strings.HasPrefix(strings.ToLower(word), prefix) {
			matched[cmd] = true
		}
	}

	matches := make([]string, 0, len(matched))
	for cmd := range matched {
		matches = append(matches, cmd)
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous command %q matches: %s", prefix, strings.Join(matches, ", "))
	}
}
