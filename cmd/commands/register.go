package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-account/internal/cli"
)

// NewRegisterCommand creates the register command
func NewRegisterCommand() *cobra.Command {
	var (
		email string
		name  string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long: `Create a new account. Missing values are prompted for.

The display name is at most 10 characters. New accounts start in dark mode.

Examples:
  pluqqy-account register
  pluqqy-account register --email ada@example.com --name Ada`,
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
			if name == "" {
				if name, err = prompt.Line("Display name"); err != nil {
					return err
				}
			}
			password, err := prompt.Password("Password")
			if err != nil {
				return err
			}
			again, err := prompt.Password("Repeat password")
			if err != nil {
				return err
			}
			if password != again {
				return fmt.Errorf("passwords do not match")
			}

			cc, err := cli.NewCommandContext(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			profile, err := cc.Sessions.Register(cmd.Context(), email, password, name)
			if err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}

			cli.PrintSuccess(out, "Registered %s (%s)", profile.DisplayName, profile.Email)
			cli.PrintInfo(out, "Run 'pluqqy-account login' to sign in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")

	return cmd
}
