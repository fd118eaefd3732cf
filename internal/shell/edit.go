package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacksmith/profiles/internal/cli"
	"github.com/jacksmith/profiles/internal/model"
	"github.com/spf13/cobra"
)

// profileFlags holds the field flags shared by add and edit.
type profileFlags struct {
	name     string
	email    string
	phone    string
	age      string
	gender   string
	hobbies  string
	notify   bool
	favorite bool
	bio      string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.age, "age", "", "age in years")
	cmd.Flags().StringVar(&f.gender, "gender", "", model.GenderChoices())
	cmd.Flags().StringVar(&f.hobbies, "hobbies", "", "comma-separated: reading, coding, travelling")
	cmd.Flags().BoolVar(&f.notify, "notify", false, "enable notifications")
	cmd.Flags().BoolVar(&f.favorite, "favorite", false, "mark as favorite")
	cmd.Flags().StringVar(&f.bio, "bio", "", "short biography")
}

// form returns a ProfileForm holding only the flags set on the command line.
func (f *profileFlags) form(cmd *cobra.Command) cli.ProfileForm {
	var form cli.ProfileForm
	changed := cmd.Flags().Changed

	if changed("name") {
		form.Name = &f.name
	}
	if changed("email") {
		form.Email = &f.email
	}
	if changed("phone") {
		form.Phone = &f.phone
	}
	if changed("age") {
		form.Age = &f.age
	}
	if changed("gender") {
		form.Gender = &f.gender
	}
	if changed("hobbies") {
		form.Hobbies = &f.hobbies
	}
	if changed("notify") {
		form.Notifications = &f.notify
	}
	if changed("favorite") {
		form.Favorite = &f.favorite
	}
	if changed("bio") {
		form.Bio = &f.bio
	}
	return form
}

func (s *Session) newAddCmd() *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a profile",
		Long: `Add a new profile. Name and email are required.

Examples:
  add --name Ana --email ana@example.com
  add --name "Bo Lee" --email bo@example.com --age 29 --hobbies coding,travelling
  add --name Cy --email cy@example.com --gender female --favorite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := flags.form(cmd)
			if form.Name == nil {
				form.Name = &flags.name
			}
			if form.Email == nil {
				form.Email = &flags.email
			}

			p, err := form.Build(model.Profile{Gender: s.cfg.Gender()})
			if err != nil {
				return err
			}

			stored, _ := s.ctrl.Save(p)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s created.\n", model.FormatID(stored.ID), stored.DisplayName())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (s *Session) newEditCmd() *cobra.Command {
	var (
		flags       profileFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a profile",
		Long: `Edit a profile's fields.

Use flags to change specific fields, or -i to edit in $EDITOR.

Examples:
  edit 1 --email ana@work.example
  edit #1 --hobbies reading --notify
  edit 1 -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			form := flags.form(cmd)
			var updated model.Profile
			switch {
			case interactive && !form.Empty():
				return fmt.Errorf("-i cannot be combined with field flags")
			case interactive:
				updated, err = s.editInteractive(cmd.Context(), p)
				if errors.Is(err, cli.ErrNoChanges) {
					fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
					return nil
				}
			case form.Empty():
				return fmt.Errorf("no changes specified")
			default:
				updated, err = form.Build(p)
			}
			if err != nil {
				return err
			}

			if _, ok := s.ctrl.Save(updated); !ok {
				return &cli.NotFoundError{Type: "profile", ID: model.FormatID(p.ID)}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated.\n", model.FormatID(p.ID))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "edit in $EDITOR")
	return cmd
}

// editInteractive round-trips p through $EDITOR as YAML.
func (s *Session) editInteractive(ctx context.Context, p model.Profile) (model.Profile, error) {
	resume, err := s.reader.Suspend()
	if err != nil {
		return p, err
	}
	defer resume()

	editable := model.ToEditable(p)
	header := fmt.Sprintf("Editing profile %s\nSave and close editor to apply changes. Exit without saving to cancel.", model.FormatID(p.ID))
	if err := cli.EditYAML(ctx, s.editor, header, &editable); err != nil {
		return p, err
	}

	return cli.ApplyEditable(p, editable)
}
