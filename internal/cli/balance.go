package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/roach88/matchtrack/internal/budget"
)

// BalanceOptions holds flags for the balance command.
type BalanceOptions struct {
	*RootOptions

	// Starting overrides the stored starting budget for this computation.
	// Defaults to the config file's startingBudget when set.
	Starting string
}

// NewBalanceCommand creates the balance command.
func NewBalanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BalanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the derived prize budget",
		Long: `Fold sold-matchbox revenue and penalty transactions into the current
prize budget. The balance is always derived from stored records, never
stored itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Starting, "starting", "", "override the starting budget for this computation")
	return cmd
}

func runBalance(opts *BalanceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, r, err := openRepository(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	override := opts.Starting
	if override == "" {
		override = opts.Config.StartingBudget
	}

	var snapshot budget.Snapshot
	if override == "" {
		snapshot, err = r.ComputeBalance(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "computing balance", err)
		}
	} else {
		starting, err := decimal.NewFromString(override)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid starting budget %q", override), err)
		}
		boxes, err := r.Matchboxes(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading matchboxes", err)
		}
		penalties, err := r.Penalties(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading penalties", err)
		}
		snapshot = budget.Compute(boxes, penalties, starting)
	}

	formatter := opts.formatter(cmd)
	if formatter.Format == "json" {
		return formatter.Success(snapshot)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderBalance(snapshot))
	return nil
}

func renderBalance(s budget.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Starting budget:  %s\n", s.StartingBudget)
	fmt.Fprintf(&b, "Revenue:         -%s\n", s.Revenue)
	fmt.Fprintf(&b, "Penalties:       -%s\n", s.TotalPenalties)
	fmt.Fprintf(&b, "Credits:         +%s\n", s.TotalCredits)
	fmt.Fprintf(&b, "Balance:          %s\n", s.Balance)
	return b.String()
}
