package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/config"
	"github.com/yigit/unirecords/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Create the default departments and exit",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DriverMemory {
				return fmt.Errorf("driver %q does not persist seeded data", cfg.Database.Driver)
			}

			database, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr)
			if err != nil {
				return err
			}
			defer database.Close()

			svc := services.NewRecordsService(bootstrap.NewRepository(database), nil, lgr)
			if err := seed.CreateDefaultData(cmd.Context(), svc, lgr); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "default data ready")
			return nil
		},
	}

	return cmd
}
