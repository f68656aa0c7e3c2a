package core

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// TransactionType is the user-facing label for a ledger entry. The stored
// amount is always signed: deposits positive, withdrawals negative.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// SignedAmount normalizes a user-entered amount to its stored signed form:
// the absolute value for a deposit, the negated absolute value for a
// withdrawal.
func SignedAmount(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	abs := amount.Abs()
	if t == Withdrawal {
		return abs.Neg()
	}
	return abs
}

// TypeForAmount derives the entry type from a signed quick-entry amount:
// positive means deposit, negative means withdrawal.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.IsNegative() {
		return Withdrawal
	}
	return Deposit
}

// Period identifies the reporting window a ledger aggregate was computed
// for. Responses are tagged with it so a consumer can discard totals that
// arrive after the displayed period has changed.
type Period struct {
	Month        int
	BudgetYearID int64
}

// Key returns a stable identifier for the period, also used as cache key.
func (p Period) Key() string {
	return strconv.Itoa(p.Month) + "/" + strconv.FormatInt(p.BudgetYearID, 10)
}

// LedgerView is the reconciled display row for one fund in one period.
type LedgerView struct {
	FundID    int64
	Level     int
	Budget    decimal.Decimal
	Actual    decimal.Decimal
	Remaining decimal.Decimal
	// HasActual is false for level-3 funds, which show only the flat amount.
	HasActual bool
}

// SumTransactions nets the signed amounts of a transaction list. Deposits
// and withdrawals cancel; the result may be negative.
func SumTransactions(txs []CashTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}

// TotalsByFund nets signed amounts grouped by fund id.
func TotalsByFund(txs []CashTransaction) map[int64]decimal.Decimal {
	totals := make(map[int64]decimal.Decimal)
	for _, t := range txs {
		totals[t.FundID] = totals[t.FundID].Add(t.Amount)
	}
	return totals
}

// BuildLedgerView applies the per-level reconciliation rule:
//
//	level 1: actual = Σ signed transaction amounts, remaining = budget − actual
//	level 2: actual = the fund's authoritative spent figure
//	level 3: flat amount only, no actual/remaining
//
// The transaction list must already be filtered to this fund and period.
func BuildLedgerView(f Fund, txs []CashTransaction) LedgerView {
	return LedgerViewFromTotal(f, SumTransactions(txs))
}

// LedgerViewFromTotal builds the view from a pre-aggregated transaction
// total, as produced by the storage layer.
func LedgerViewFromTotal(f Fund, txTotal decimal.Decimal) LedgerView {
	v := LedgerView{FundID: f.ID, Level: f.Level, Budget: f.Amount}
	switch f.Level {
	case LevelCash:
		v.Actual = txTotal
		v.Remaining = f.Amount.Sub(v.Actual)
		v.HasActual = true
	case LevelBudgetSpent:
		v.Actual = f.Spent
		v.Remaining = f.Amount.Sub(f.Spent)
		v.HasActual = true
	}
	return v
}

// IncludedBudgetTotal sums the budgeted amounts of funds flagged as
// counting toward the overall budget.
func IncludedBudgetTotal(funds []Fund) decimal.Decimal {
	total := decimal.Zero
	for _, f := range funds {
		if f.IncludeInBudget {
			total = total.Add(f.Amount)
		}
	}
	return total
}
