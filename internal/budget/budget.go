// Package budget derives the single competition balance from starting
// capital, sold-matchbox revenue, and signed penalty transactions.
//
// Compute is deterministic and side-effect free; no component other than the
// settings surface ever changes the starting budget.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/matchtrack/internal/domain"
)

// DefaultStartingBudget is the starting capital used when no value is
// configured in the meta collection.
var DefaultStartingBudget = decimal.NewFromInt(200000)

// Snapshot is the derived ledger state.
//
// Balance = StartingBudget - Revenue - TotalPenalties + TotalCredits.
// Revenue counts against the balance: every sold matchbox spends prize money.
type Snapshot struct {
	StartingBudget decimal.Decimal `json:"startingBudget"`
	Revenue        decimal.Decimal `json:"revenue"`
	TotalPenalties decimal.Decimal `json:"totalPenalties"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	Balance        decimal.Decimal `json:"balance"`
}

// Compute folds matchboxes and penalties into a Snapshot.
//
// Revenue sums the prices of sold matchboxes. Negative penalty amounts
// accumulate into TotalPenalties as absolute values; positive amounts
// accumulate into TotalCredits.
func Compute(boxes []domain.Matchbox, penalties []domain.Penalty, startingBudget decimal.Decimal) Snapshot {
	revenue := decimal.Zero
	for _, box := range boxes {
		if box.MatchType == domain.MatchSold && box.Price != nil {
			revenue = revenue.Add(*box.Price)
		}
	}

	totalPenalties := decimal.Zero
	totalCredits := decimal.Zero
	for _, p := range penalties {
		switch {
		case p.Amount.IsNegative():
			totalPenalties = totalPenalties.Add(p.Amount.Abs())
		case p.Amount.IsPositive():
			totalCredits = totalCredits.Add(p.Amount)
		}
	}

	return Snapshot{
		StartingBudget: startingBudget,
		Revenue:        revenue,
		TotalPenalties: totalPenalties,
		TotalCredits:   totalCredits,
		Balance:        startingBudget.Sub(revenue).Sub(totalPenalties).Add(totalCredits),
	}
}
