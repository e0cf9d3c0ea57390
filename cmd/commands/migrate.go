package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-account/internal/cli"
	"github.com/pluqqy/pluqqy-account/internal/config"
	"github.com/pluqqy/pluqqy-account/pkg/store/postgres"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply pending schema migrations to the PostgreSQL store.

Only needed when store.driver is postgres. The file store needs no setup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate requires store.driver %q (got %q)", config.DriverPostgres, cfg.Store.Driver)
			}

			n, err := postgres.Migrate(cmd.Context(), cfg.Store.DSN)
			if err != nil {
				return err
			}

			if n == 0 {
				cli.PrintInfo(cmd.OutOrStdout(), "Database is up to date")
				return nil
			}
			cli.PrintSuccess(cmd.OutOrStdout(), "Applied %d migration(s)", n)
			return nil
		},
	}
}
