package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/matchtrack/internal/broadcast"
	"github.com/roach88/matchtrack/internal/migrate"
	"github.com/roach88/matchtrack/internal/record"
	"github.com/roach88/matchtrack/internal/repo"
)

// DefaultDatabase is used when neither flag, environment, nor config file
// names a database path.
const DefaultDatabase = "matchtrack.db"

// DefaultConfigPath is probed when --config is not given.
const DefaultConfigPath = "matchtrack.yaml"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string
	ConfigPath string

	// Config is populated from the YAML file during PersistentPreRunE.
	Config Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the matchtrack CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "matchtrack",
		Short:         "Matchmaking competition tracker",
		Long:          "Tracks participants, matching nights, matchboxes, penalties, and the prize budget of a matchmaking competition.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			explicit := cmd.Flags().Changed("config") || cmd.InheritedFlags().Changed("config")
			cfg, err := LoadConfig(opts.ConfigPath, explicit)
			if err != nil {
				return err
			}
			opts.Config = cfg

			// Database path precedence: flag, environment, config file, default.
			if opts.Database == "" {
				opts.Database = os.Getenv("MATCHTRACK_DB")
			}
			if opts.Database == "" {
				opts.Database = cfg.Database
			}
			if opts.Database == "" {
				opts.Database = DefaultDatabase
			}

			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", DefaultConfigPath, "path to YAML config file")

	// Add subcommands
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewBalanceCommand(opts))
	cmd.AddCommand(NewTimelineCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openRepository opens the store, brings it up to the current schema version,
// and wraps it in a repository configured from the loaded config. Operating
// on a stale store is a fatal startup condition, so every command migrates
// before the facade touches any record. The caller owns the returned store
// and must Close it.
func openRepository(ctx context.Context, opts *RootOptions) (*record.Store, *repo.Repository, error) {
	st, err := record.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	from, to, err := migrate.Run(ctx, st)
	if err != nil {
		st.Close()
		return nil, nil, WrapExitError(ExitFailure, "schema migration failed", err)
	}
	if from != to {
		slog.Info("schema migrated", "from", from, "to", to)
	}

	var ropts []repo.Option
	if opts.Config.DefaultAirTime != "" {
		ropts = append(ropts, repo.WithBroadcastOptions(broadcast.WithDefaultAirTime(opts.Config.DefaultAirTime)))
	}
	return st, repo.New(st, ropts...), nil
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}
