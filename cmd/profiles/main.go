// Package main is the entry point for the profiles CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jacksmith/profiles/internal/cli"
	"github.com/jacksmith/profiles/internal/config"
	"github.com/jacksmith/profiles/internal/controller"
	"github.com/jacksmith/profiles/internal/logging"
	"github.com/jacksmith/profiles/internal/shell"
	"github.com/jacksmith/profiles/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		stop()
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	noColor    bool
	file       string
	yes        bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "profiles - an in-memory user profile manager",
		Long: `profiles keeps a list of user profiles for the length of a session.

Commands are read one per line, from the terminal or from a file given
with --file. Type 'help' inside the session for the list of commands.

Profiles live in memory only; nothing is saved when the session ends.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, stdin, stdout, stderr)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetVersionTemplate("profiles version {{.Version}}\n")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $PROFILES_CONFIG or ./"+config.FileName+")")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read commands from a file instead of stdin")
	cmd.Flags().BoolVar(&opts.yes, "yes", false, "do not ask before deleting")

	return cmd
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(config.Locate(opts.configPath))
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	log, err := logging.New(stderr, level, cfg.LogFormat)
	if err != nil {
		return err
	}
	log = log.With(slog.String("session", uuid.NewString()))

	cli.SetColorEnabled(!opts.noColor && cfg.UseColor(cli.IsTerminal(stdout)))

	in := stdin
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("failed to open command file: %w", err)
		}
		defer f.Close()
		in = f
	}

	s := store.New(store.WithLogger(log))
	ctrl := controller.New(log, s)
	sess := shell.New(ctrl, in, stdout,
		shell.WithConfig(cfg),
		shell.WithLogger(log),
		shell.WithAssumeYes(opts.yes),
	)

	log.Debug("starting session", slog.String("version", Version))
	return sess.Run(ctx)
}
