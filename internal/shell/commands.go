package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacksmith/profiles/internal/cli"
	"github.com/jacksmith/profiles/internal/model"
	"github.com/spf13/cobra"
)

// newRootCmd builds a fresh command tree bound to the session. Flags are
// local to each tree, so nothing leaks from one line to the next.
func (s *Session) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "profiles",
		Short:         "Manage user profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(s.out)
	root.SetErr(s.out)

	root.AddCommand(
		s.newListCmd(),
		s.newShowCmd(),
		s.newAddCmd(),
		s.newEditCmd(),
		s.newFavCmd(),
		s.newDeleteCmd(),
		s.newDumpCmd(),
		s.newExitCmd(),
	)
	return root
}

// commandWords maps every command name and alias of root to the command
// name, for prefix matching.
func commandWords(root *cobra.Command) map[string]string {
	words := map[string]string{"help": "help"}
	for _, c := range root.Commands() {
		words[c.Name()] = c.Name()
		for _, alias := range c.Aliases {
			words[alias] = c.Name()
		}
	}
	return words
}

// lookup loads the profile with the given ID into the current slot and
// returns it.
func (s *Session) lookup(ctx context.Context, arg string) (model.Profile, error) {
	id, err := model.ParseID(arg)
	if err != nil {
		return model.Profile{}, err
	}

	s.ctrl.Load(ctx, id)
	if err := s.ctrl.Wait(); err != nil {
		return model.Profile{}, err
	}
	s.sync()

	if s.shown.ID != id || !s.shown.Found {
		return model.Profile{}, &cli.NotFoundError{Type: "profile", ID: model.FormatID(id)}
	}
	return s.shown.Profile, nil
}

func (s *Session) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List profiles",
		Long: `List all profiles in the order they were added.

Favorites are marked with a star.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.sync()
			renderList(cmd.OutOrStdout(), s.observed)
			return nil
		},
	}
}

func renderList(w io.Writer, profiles []model.Profile) {
	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxNameWidth)
	table.SetHeader("ID", "", "NAME", "EMAIL", "PHONE", "AGE")
	for _, p := range profiles {
		table.AddRow(
			model.FormatID(p.ID),
			cli.Star(p.IsFavorite),
			p.DisplayName(),
			p.Email,
			orDash(p.Phone),
			strconv.Itoa(p.Age),
		)
	}

	if table.Len() == 0 {
		fmt.Fprintln(w, "(no profiles)")
		return
	}
	table.Render(w)
}

func (s *Session) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func renderProfile(w io.Writer, p model.Profile) {
	title := cli.Bold(model.FormatID(p.ID) + " " + p.DisplayName())
	if p.IsFavorite {
		title += " " + cli.Star(true)
	}
	fmt.Fprintln(w, title)

	table := cli.NewTable()
	table.AddRow("  email", p.Email)
	table.AddRow("  phone", orDash(p.Phone))
	table.AddRow("  age", strconv.Itoa(p.Age))
	table.AddRow("  gender", p.Gender.Label())
	table.AddRow("  hobbies", orDash(p.Hobbies.String()))
	table.AddRow("  notifications", cli.YesNo(p.NotificationsEnabled))
	table.AddRow("  favorite", cli.YesNo(p.IsFavorite))
	table.Render(w)

	if bio := strings.TrimRight(p.Bio, "\n"); bio != "" {
		fmt.Fprintln(w)
		for _, line := range strings.Split(bio, "\n") {
			fmt.Fprintln(w, strings.TrimRight("    "+line, " "))
		}
	}
}

func (s *Session) newFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fav <id>",
		Aliases: []string{"favorite"},
		Short:   "Toggle the favorite flag of a profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}

			p, ok := s.ctrl.ToggleFavorite(model.Profile{ID: id})
			if !ok {
				return &cli.NotFoundError{Type: "profile", ID: model.FormatID(id)}
			}

			if p.IsFavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now a favorite.\n", model.FormatID(p.ID), p.DisplayName())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is no longer a favorite.\n", model.FormatID(p.ID), p.DisplayName())
			}
			return nil
		},
	}
}

func (s *Session) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a profile",
		Long: `Delete a profile.

Asks for confirmation unless --yes is given or confirm_delete is false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes && !s.assumeYes && s.cfg.ConfirmDelete {
				question := fmt.Sprintf("Delete %s %s?", model.FormatID(p.ID), p.DisplayName())
				if !cli.Confirm(question, s.ask(cmd.Context()), out) {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if !s.ctrl.Delete(p) {
				return &cli.NotFoundError{Type: "profile", ID: model.FormatID(p.ID)}
			}
			fmt.Fprintf(out, "%s deleted.\n", model.FormatID(p.ID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (s *Session) newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print all profiles as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.sync()
			data, err := model.MarshalProfiles(s.observed)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (s *Session) newExitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "exit",
		Aliases: []string{"quit"},
		Short:   "End the session",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s.done = true
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
