package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// lineReader reads one command line at a time.
type lineReader interface {
	// ReadLine shows prompt (if any) and returns the next line without its
	// terminator. It returns io.EOF when input ends.
	ReadLine(prompt string) (string, error)

	// Suspend hands the terminal back to cooked mode until resume is called.
	Suspend() (resume func(), err error)

	Close() error
}

// termReader reads lines from a raw-mode terminal with line editing and
// history. Output must go through the terminal while it is active.
type termReader struct {
	fd    int
	state *term.State
	t     *term.Terminal
}

func newTermReader(in *os.File, out io.Writer) (*termReader, error) {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "")
	if width, height, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(width, height)
	}

	return &termReader{fd: fd, state: state, t: t}, nil
}

func (r *termReader) ReadLine(prompt string) (string, error) {
	r.t.SetPrompt(prompt)
	return r.t.ReadLine()
}

func (r *termReader) Suspend() (func(), error) {
	if err := term.Restore(r.fd, r.state); err != nil {
		return nil, fmt.Errorf("failed to restore terminal: %w", err)
	}
	return func() {
		if state, err := term.MakeRaw(r.fd); err == nil {
			r.state = state
		}
	}, nil
}

func (r *termReader) Close() error {
	return term.Restore(r.fd, r.state)
}

// Write sends output through the terminal so it lands above the prompt.
func (r *termReader) Write(p []byte) (int, error) {
	return r.t.Write(p)
}

// scanReader reads lines from a pipe, file or buffer. Prompts are written
// to out as plain text.
type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newScanReader(in io.Reader, out io.Writer) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *scanReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
}

func (r *scanReader) Suspend() (func(), error) {
	return func() {}, nil
}

func (r *scanReader) Close() error {
	return nil
}

// splitArgs splits a command line into words the way a POSIX shell would
// for the simple cases: whitespace separates words, single quotes keep
// everything literally, double quotes group words and backslash escapes the
// next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		escaped bool
		quote   rune
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, inWord = r, true
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
