package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/matchtrack/internal/migrate"
	"github.com/roach88/matchtrack/internal/record"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database up to the current schema version",
		Long: `Apply pending schema migration steps, each in its own transaction.
Running against an up-to-date database is a no-op.

Example:
  matchtrack migrate --db ./season.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
	return cmd
}

func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	st, err := record.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	from, to, err := migrate.Run(cmd.Context(), st)
	if err != nil {
		return WrapExitError(ExitFailure, "migration failed", err)
	}

	formatter := opts.formatter(cmd)
	if from == to {
		return formatter.Success(fmt.Sprintf("schema already at version %d", to))
	}
	return formatter.Success(fmt.Sprintf("schema migrated from version %d to %d", from, to))
}
