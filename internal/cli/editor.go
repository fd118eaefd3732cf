package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoChanges is returned by EditYAML when the buffer comes back untouched.
var ErrNoChanges = errors.New("no changes")

// Editor runs an external editor over a temporary file.
type Editor struct {
	// Command overrides VISUAL and EDITOR when set.
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewEditor returns an editor attached to the process stdio.
func NewEditor() *Editor {
	return &Editor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit opens content in the editor and returns the modified content.
// The suffix is used for the temporary file (e.g., ".yaml" for syntax highlighting).
// Returns error if no editor is configured or the editor exits non-zero.
func (e *Editor) Edit(ctx context.Context, content []byte, suffix string) ([]byte, error) {
	editor := e.Command
	if editor == "" {
		editor = getEditor()
	}
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or use flags instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "profiles-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := e.run(ctx, editor, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// EditYAML renders v as YAML, lets the user edit it and decodes the result
// back into v. The header is prepended as a comment block.
func EditYAML(ctx context.Context, e *Editor, header string, v any) error {
	body, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}

	var buf bytes.Buffer
	for _, line := range strings.Split(strings.TrimSpace(header), "\n") {
		if line == "" {
			buf.WriteString("#\n")
			continue
		}
		buf.WriteString("# " + line + "\n")
	}
	buf.Write(body)
	original := buf.Bytes()

	edited, err := e.Edit(ctx, original, ".yaml")
	if err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(edited), bytes.TrimSpace(original)) {
		return ErrNoChanges
	}
	if len(bytes.TrimSpace(edited)) == 0 {
		return fmt.Errorf("empty document, edit aborted")
	}

	if err := yaml.Unmarshal(edited, v); err != nil {
		return fmt.Errorf("failed to parse edited YAML: %w", err)
	}
	return nil
}

// getEditor returns the editor command from environment.
// Checks VISUAL first (for graphical editors), then EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// run executes the editor with the given file path.
func (e *Editor) run(ctx context.Context, editor, path string) error {
	// Split editor into command and args (e.g., "code --wait")
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(parts[1:], path)
	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
