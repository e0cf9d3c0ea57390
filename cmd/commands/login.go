package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-account/internal/cli"
	"github.com/pluqqy/pluqqy-account/pkg/session"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Long: `Sign in and remember the session in the data directory.

Examples:
  pluqqy-account login
  pluqqy-account login --email ada@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			prompt := cli.NewPrompter(cmd.InOrStdin(), out)

			var err error
			if email == "" {
				if email, err = prompt.Line("Email"); err != nil {
					return err
				}
			}
			password, err := prompt.Password("Password")
			if err != nil {
				return err
			}

			cc, err := cli.NewCommandContext(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			profile, err := cc.Sessions.Login(cmd.Context(), email, password)
			if err != nil {
				if errors.Is(err, session.ErrInvalidCredentials) {
					return fmt.Errorf("invalid email or password")
				}
				return fmt.Errorf("failed to sign in: %w", err)
			}

			cli.PrintSuccess(out, "Signed in as %s", profile.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := cli.NewCommandContext(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			if err := cc.Sessions.EndSession(cmd.Context()); err != nil {
				return fmt.Errorf("failed to sign out: %w", err)
			}

			cli.PrintSuccess(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}
