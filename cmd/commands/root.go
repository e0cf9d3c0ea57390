package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/internal/cli"
	"github.com/pluqqy/pluqqy-account/pkg/theme"
	"github.com/pluqqy/pluqqy-account/pkg/tui"
)

// NewRootCommand creates the root command. Without a subcommand it
// launches the account TUI.
func NewRootCommand(version string) *cobra.Command {
	var (
		quiet   bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "pluqqy-account",
		Short: "Manage your Pluqqy account from the terminal",
		Long: `pluqqy-account manages the account you use across Pluqqy tools.

Run it without arguments to open the interactive account screen, where
you can change your display name, switch between dark and light mode,
upload a profile photo and sign out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.SetGlobalFlags(quiet, noColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, version)
		},
	}

	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable symbols in output")

	cmd.AddCommand(
		NewRegisterCommand(),
		NewLoginCommand(),
		NewLogoutCommand(),
		NewWhoamiCommand(),
		NewSetCommand(),
		NewPhotoCommand(),
		NewMigrateCommand(),
		NewVersionCommand(version),
	)

	return cmd
}

func runTUI(cmd *cobra.Command, version string) error {
	cc, err := cli.NewCommandContext(cmd.Context())
	if err != nil {
		return err
	}
	defer cc.Close()

	theme.Init(cc.Cache)
	if p, err := cc.Sessions.CurrentUser(cmd.Context()); err == nil && p != nil {
		if err := theme.Sync(p.DarkMode, cc.Cache); err != nil {
			cc.Logger.Warn("failed to cache appearance", zap.String("user_id", p.ID.String()), zap.Error(err))
		}
	}
	tui.Version = version

	var uploader tui.Uploader
	if svc, err := cc.Photos(cmd.Context()); err != nil {
		cc.Logger.Warn("photo uploads disabled", zap.Error(err))
	} else {
		uploader = svc
	}

	app := tui.NewApp(tui.Options{
		Identity:   cc.Sessions,
		Auth:       cc.Sessions,
		Store:      cc.Store,
		Cache:      cc.Cache,
		Appearance: theme.Global{},
		Uploader:   uploader,
		Logger:     cc.Logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}
