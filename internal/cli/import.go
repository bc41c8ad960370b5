package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/matchtrack/internal/repo"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the database with an exported JSON document",
		Long: `Validate an exported JSON document and replace the entire database
with its contents. The document is checked before anything is cleared;
a malformed document leaves the database untouched.

Example:
  matchtrack import --db ./season.db backup.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runImport(opts *RootOptions, cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading import file", err)
	}

	st, r, err := openRepository(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer st.Close()

	formatter := opts.formatter(cmd)
	if err := r.ImportAll(cmd.Context(), data); err != nil {
		if repo.IsImportError(err) {
			_ = formatter.Error("E101", "import document rejected", err.Error())
			return WrapExitError(ExitFailure, "import document rejected", err)
		}
		return WrapExitError(ExitCommandError, "import failed", err)
	}

	return formatter.Success(fmt.Sprintf("imported %s", path))
}
