// Package shell implements the interactive profiles session: it reads
// command lines, runs them against the controller and renders the views.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jacksmith/profiles/internal/cli"
	"github.com/jacksmith/profiles/internal/config"
	"github.com/jacksmith/profiles/internal/controller"
	"github.com/jacksmith/profiles/internal/logging"
	"github.com/jacksmith/profiles/internal/store"
	"golang.org/x/term"
)

// Session is one interactive shell over a controller. A Session is used by a
// single goroutine.
type Session struct {
	ctrl      *controller.Controller
	cfg       *config.Config
	log       *slog.Logger
	editor    *cli.Editor
	assumeYes bool

	in  io.Reader
	out io.Writer

	reader      lineReader
	interactive bool
	done        bool

	// Latest values seen on the controller streams, subscribed for the
	// lifetime of the session.
	stop     context.CancelFunc
	profiles <-chan store.Snapshot
	current  <-chan controller.Lookup
	observed store.Snapshot
	shown    controller.Lookup
}

// Option configures a Session.
type Option func(*Session)

// WithConfig sets the user configuration. Defaults apply otherwise.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger for the session.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithEditor sets the editor used by "edit -i".
func WithEditor(e *cli.Editor) Option {
	return func(s *Session) {
		s.editor = e
	}
}

// WithAssumeYes skips delete confirmations.
func WithAssumeYes(yes bool) Option {
	return func(s *Session) {
		s.assumeYes = yes
	}
}

// New returns a session reading commands from in and writing to out. The
// session follows the controller streams until Close is called.
func New(ctrl *controller.Controller, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		ctrl:   ctrl,
		cfg:    config.Default(),
		log:    logging.Discard(),
		editor: cli.NewEditor(),
		in:     in,
		out:    out,
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	s.profiles = ctrl.Profiles(ctx)
	s.current = ctrl.Current(ctx)
	s.sync()
	return s
}

// Close releases the controller subscriptions and the line reader.
func (s *Session) Close() error {
	s.stop()
	if s.reader == nil {
		return nil
	}
	return s.reader.Close()
}

// Run reads and executes commands until input ends, exit is issued or ctx
// is done. It waits for pending loads and closes the session before
// returning.
func (s *Session) Run(ctx context.Context) error {
	const op = "shell.Run"

	log := s.log.With(slog.String("op", op))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.open(); err != nil {
		return err
	}
	defer s.Close()
	s.sync()

	log.Debug("session started", slog.Bool("interactive", s.interactive))
	if s.interactive {
		fmt.Fprintln(s.out, "Type 'help' for a list of commands, 'exit' to quit.")
	}

	prompt := ""
	if s.interactive {
		prompt = s.cfg.Prompt
	}

	for !s.done {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				break
			}
			log.Error("failed to read input", logging.Err(err))
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := s.Exec(ctx, line); err != nil {
			fmt.Fprintln(s.out, cli.Red(cli.FormatError(err)))
		}
	}

	log.Debug("session ended")
	return s.ctrl.Wait()
}

// open picks the line reader: a raw-mode terminal when both ends are
// terminals, a plain scanner otherwise. It is a no-op once a reader is open.
func (s *Session) open() error {
	if s.reader != nil {
		return nil
	}
	if f, ok := s.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) && cli.IsTerminal(s.out) {
		r, err := newTermReader(f, s.out)
		if err != nil {
			return err
		}
		s.reader = r
		s.out = r
		s.interactive = true
		return nil
	}
	s.reader = newScanReader(s.in, s.out)
	return nil
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line, giving up when ctx is done.
func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := s.reader.ReadLine(prompt)
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// ask returns a prompt function for cli.Confirm bound to ctx.
func (s *Session) ask(ctx context.Context) func(string) (string, error) {
	return func(prompt string) (string, error) {
		return s.readLine(ctx, prompt)
	}
}

// sync drains the controller streams, keeping the latest value of each.
func (s *Session) sync() {
	for {
		select {
		case snap, ok := <-s.profiles:
			if !ok {
				s.profiles = nil
				continue
			}
			s.observed = snap
		case l, ok := <-s.current:
			if !ok {
				s.current = nil
				continue
			}
			s.shown = l
		default:
			return
		}
	}
}

// Exec runs a single command line. Blank lines and lines starting with '#'
// are ignored.
func (s *Session) Exec(ctx context.Context, line string) error {
	const op = "shell.Exec"

	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if err := s.open(); err != nil {
		return err
	}
	s.sync()

	// Flags such as --help go to the root command as they are.
	root := s.newRootCmd()
	name := args[0]
	if !strings.HasPrefix(name, "-") {
		name, err = cli.MatchCommand(name, commandWords(root))
		if err != nil {
			return err
		}
		args[0] = name
	}

	s.log.Debug("executing command",
		slog.String("op", op),
		slog.String("command", name),
		slog.Int("args", len(args)-1),
	)

	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	s.sync()
	return err
}
