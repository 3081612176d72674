package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	Port string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			if opts.Port != "" {
				cfg.Server.Port = opts.Port
			}

			srv, err := server.NewServer(cmd.Context(), cfg, lgr)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "override the configured listen port")

	return cmd
}
