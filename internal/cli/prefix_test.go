package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCommand(t *testing.T) {
	words := map[string]string{
		"list":     "list",
		"ls":       "list",
		"show":     "show",
		"add":      "add",
		"delete":   "delete",
		"rm":       "delete",
		"dump":     "dump",
		"fav":      "fav",
		"favorite": "fav",
	}

	tests := []struct {
		name      string
		prefix    string
		want      string
		wantError bool
		errorMsg  string
	}{
		{
			name:   "exact match",
			prefix: "list",
			want:   "list",
		},
		{
			name:   "exact match case insensitive",
			prefix: "LIST",
			want:   "list",
		},
		{
			name:   "alias resolves to canonical name",
			prefix: "rm",
			want:   "delete",
		},
		{
			name:   "unique prefix sh matches show",
			prefix: "sh",
			want:   "show",
		},
		{
			name:   "prefix l matches list and its alias ls",
			prefix: "l",
			want:   "list",
		},
		{
			name:   "prefix fa matches fav and favorite",
			prefix: "fa",
			want:   "fav",
		},
		{
			name:   "unique prefix de matches delete",
			prefix: "de",
			want:   "delete",
		},
		{
			name:      "ambiguous prefix d matches delete and dump",
			prefix:    "d",
			wantError: true,
			errorMsg:  "ambiguous command \"d\" matches: delete, dump",
		},
		{
			name:      "no match xyz",
			prefix:    "xyz",
			wantError: true,
			errorMsg:  "unknown command",
		},
		{
			name:      "empty prefix is ambiguous",
			prefix:    "",
			wantError: true,
			errorMsg:  "ambiguous command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchCommand(tt.prefix, words)

			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatchCommandEmptyCommands(t *testing.T) {
	_, err := MatchCommand("list", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestMatchCommandSingleCommand(t *testing.T) {
	got, err := MatchCommand("l", map[string]string{"list": "list"})
	require.NoError(t, err)
	assert.Equal(t, "list", got)
}
