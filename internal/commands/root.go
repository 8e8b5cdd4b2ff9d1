package commands

import (
	"github.com/spf13/cobra"

	"github.com/rentalai/rentalai/internal/buildinfo"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	dir      string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "rentalai",
		Short:   "Bank statement ingestion for rental property books",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", ".", "data directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newParseCommand(opts),
		newYTDCommand(opts),
		newImportCommand(opts),
		newExportCommand(opts),
		newSnapshotsCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}
