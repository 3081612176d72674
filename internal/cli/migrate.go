package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/config"
	"github.com/yigit/unirecords/internal/db"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply pending schema migrations and exit",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DriverMemory {
				return fmt.Errorf("driver %q has no schema to migrate", cfg.Database.Driver)
			}

			database, err := db.Open(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			applied, err := bootstrap.RunMigrations(cmd.Context(), database, lgr)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}

	return cmd
}
