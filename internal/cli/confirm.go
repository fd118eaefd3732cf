package cli

import (
	"fmt"
	"io"
	"strings"
)

// Confirm asks question with a " [y/N] " suffix through ask, which shows the
// prompt and reads one line of input. Only "y" and "yes" (any case) confirm.
// A read error, EOF included, counts as no and ends the prompt line on w.
func Confirm(question string, ask func(prompt string) (string, error), w io.Writer) bool {
	answer, err := ask(question + " [y/N] ")
	if err != nil {
		fmt.Fprintln(w)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
