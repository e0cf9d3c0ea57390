package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/internal/cli"
	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/theme"
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name|dark-mode> <value>",
		Short: "Change a profile setting",
		Long: `Change a profile setting without opening the TUI.

Examples:
  # Change the display name (at most 10 characters)
  pluqqy-account set name Ada

  # Switch to light mode
  pluqqy-account set dark-mode off`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	setting, value := args[0], args[1]

	var fields models.Fields
	switch setting {
	case "name", "display-name":
		name := strings.TrimSpace(value)
		if name == "" {
			return fmt.Errorf("name cannot be empty")
		}
		fields = models.Fields{models.FieldDisplayName: name}
	case "dark-mode":
		dark, err := cli.ParseOnOff(strings.ToLower(value))
		if err != nil {
			return err
		}
		fields = models.Fields{models.FieldDarkMode: dark}
	default:
		return fmt.Errorf("unknown setting %q (expected name or dark-mode)", setting)
	}

	cc, err := cli.NewCommandContext(cmd.Context())
	if err != nil {
		return err
	}
	defer cc.Close()

	p, err := cc.RequireUser(cmd.Context())
	if err != nil {
		return err
	}

	if err := cc.Store.UpdateFields(cmd.Context(), p.ID, fields); err != nil {
		return fmt.Errorf("failed to update %s: %w", setting, err)
	}

	out := cmd.OutOrStdout()
	if dark, ok := fields[models.FieldDarkMode].(bool); ok {
		if err := cc.Cache.Set(theme.CacheKey, theme.CacheValue(dark)); err != nil {
			cc.Logger.Warn("failed to cache appearance", zap.String("user_id", p.ID.String()), zap.Error(err))
		}
		cli.PrintSuccess(out, "Appearance set to %s", theme.ModeName(dark))
		return nil
	}

	cli.PrintSuccess(out, "Display name set to %s", fields[models.FieldDisplayName])
	return nil
}
