package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationInteractive marks commands that take over the terminal. Their
// logs always go to the log file, even with --debug.
const annotationInteractive = "pagedtable/interactive"

// NewRootCmd creates the root Cobra command for the pagedtable CLI.
// It loads configuration, wires up logging and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath  string
		overlayPath string
	)

	cmd := &cobra.Command{
		Use:     "pagedtable",
		Short:   "Browse paginated remote collections in the terminal",
		Long:    "pagedtable: page, filter and resize tables backed by remote HTTP APIs",
		Version: ver,
		Example: rootCmdExample,
		// main prints the error once.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithOverlay(configPath, overlayPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"configuration file (default $PAGEDTABLE_HOME/config.yaml or ~/.pagedtable/config.yaml)")
	cmd.PersistentFlags().StringVar(&overlayPath, "overlay", "",
		"YAML file whose sections replace those of the configuration file ($PAGEDTABLE_OVERLAY)")

	cmd.AddCommand(
		NewBrowseCmd(), NewFetchCmd(), NewExportCmd(), NewResourcesCmd(),
		newConfigCmd(), newCacheCmd(), NewVersionCmd(ver),
	)
	return cmd
}

const rootCmdExample = `  # Pick a resource and browse it interactively
  pagedtable browse

  # Browse comments with filters that apply only on enter
  pagedtable browse comments --filter-mode staged

  # Start with a filter already set
  pagedtable browse posts --filter title=qui

  # Print the third page of users as JSON
  pagedtable fetch users --page 3 --page-size 5 --output json

  # Show the available resources and their columns
  pagedtable resources

  # Write a default configuration file
  pagedtable config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(NewCacheInfoCmd(), NewCacheClearCmd(), NewCachePruneCmd())
	return cmd
}
