package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the full database as a JSON document",
		Long: `Export all participants, matching nights, matchboxes, and penalties
as a single JSON document suitable for re-import.

Writes to stdout when no file is given.

Example:
  matchtrack export --db ./season.db backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runExport(opts *RootOptions, cmd *cobra.Command, args []string) error {
	st, r, err := openRepository(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer st.Close()

	doc, err := r.ExportAll(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding export document", err)
	}
	data = append(data, '\n')

	if len(args) == 1 {
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "writing export file", err)
		}
		slog.Info("export written", "file", args[0], "participants", len(doc.Participants))
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
