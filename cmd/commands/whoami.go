package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-account/internal/cli"
	"github.com/pluqqy/pluqqy-account/pkg/theme"
)

// WhoamiResult is the structured output of whoami
type WhoamiResult struct {
	ID          string `json:"id" yaml:"id"`
	Email       string `json:"email" yaml:"email"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty" yaml:"photo_url,omitempty"`
	Appearance  string `json:"appearance" yaml:"appearance"`
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Long: `Show the signed-in account.

Examples:
  pluqqy-account whoami
  pluqqy-account whoami -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := cli.NewCommandContext(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			p, err := cc.RequireUser(cmd.Context())
			if err != nil {
				return err
			}

			result := WhoamiResult{
				ID:          p.ID.String(),
				Email:       p.Email,
				DisplayName: p.DisplayName,
				PhotoURL:    p.PhotoURL,
				Appearance:  theme.ModeName(p.DarkMode),
			}

			out := cmd.OutOrStdout()
			switch output {
			case "json", "yaml":
				return cli.OutputResults(out, output, result)
			default:
				photo := result.PhotoURL
				if photo == "" {
					photo = "none"
				}
				fmt.Fprintf(out, "Name:       %s\n", result.DisplayName)
				fmt.Fprintf(out, "Email:      %s\n", result.Email)
				fmt.Fprintf(out, "Appearance: %s\n", result.Appearance)
				fmt.Fprintf(out, "Photo:      %s\n", photo)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}
