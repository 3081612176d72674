package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// DefaultConfigPath is read when --config is not given; a missing file is not an error
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// NewRootCommand creates the root command for the records CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "unirecords",
		Short: "University records store",
		Long: `Stores departments, faculty, students, courses, enrollments and exams
behind a JSON API, with PostgreSQL, SQLite or in-memory storage.`,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", DefaultConfigPath, "path to the YAML config file")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
