package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"taktziv/internal/core"
	"taktziv/internal/storage"

	"github.com/shopspring/decimal"
)

// LedgerService orchestrates envelope funds and their transaction ledgers.
type LedgerService struct {
	storage *storage.Repository
}

func NewLedgerService(storage *storage.Repository) *LedgerService {
	return &LedgerService{storage: storage}
}

// CreateTransaction normalizes the sign from the entry type, validates and
// persists. The caller supplies the raw user-entered amount; deposits are
// stored positive, withdrawals negative regardless of the entered sign.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.CashTransaction, entryType core.TransactionType) (core.CashTransaction, error) {
	t.Amount = core.SignedAmount(entryType, t.Amount)
	if err := t.Validate(); err != nil {
		return core.CashTransaction{}, err
	}
	if err := s.checkCashFund(ctx, t.FundID); err != nil {
		return core.CashTransaction{}, err
	}

	created, err := s.storage.CreateTransaction(ctx, t)
	if err != nil {
		return core.CashTransaction{}, err
	}

	slog.InfoContext(ctx, "Ledger entry created",
		"id", created.ID,
		"fund_id", created.FundID,
		"amount", created.Amount.String())
	return created, nil
}

// UpdateTransaction replaces a ledger entry in full, holding it to the same
// fund rules as creation.
func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.CashTransaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.checkCashFund(ctx, t.FundID); err != nil {
		return err
	}
	return s.storage.UpdateTransaction(ctx, t)
}

// checkCashFund verifies the fund exists and keeps a cash ledger. Entries
// against budget-vs-spent and flat funds are never aggregated, so they are
// rejected outright.
func (s *LedgerService) checkCashFund(ctx context.Context, fundID int64) error {
	fund, err := s.storage.GetFund(ctx, fundID)
	if err != nil {
		if err == storage.ErrNotFound {
			return core.ErrMissingFund
		}
		return fmt.Errorf("check fund: %w", err)
	}
	if fund.Level != core.LevelCash {
		return core.ErrNotCashFund
	}
	return nil
}

// QuickAdd handles the dashboard quick-entry field. Empty, non-numeric and
// zero input is a silent no-op: ok is false and nothing is persisted.
func (s *LedgerService) QuickAdd(ctx context.Context, fundID int64, rawAmount, description string, date core.Date, period core.Period, year int) (core.CashTransaction, bool, error) {
	trimmed := strings.TrimSpace(rawAmount)
	if trimmed == "" {
		return core.CashTransaction{}, false, nil
	}
	amount, err := decimal.NewFromString(core.StripThousands(trimmed))
	if err != nil || amount.IsZero() {
		return core.CashTransaction{}, false, nil
	}

	t := core.CashTransaction{
		FundID:       fundID,
		BudgetYearID: period.BudgetYearID,
		Date:         date,
		Amount:       amount,
		Description:  strings.TrimSpace(description),
		Month:        period.Month,
		Year:         year,
	}
	created, err := s.CreateTransaction(ctx, t, core.TypeForAmount(amount))
	if err != nil {
		return core.CashTransaction{}, false, err
	}
	return created, true, nil
}

// FundOverview is one reconciled fund row in the period overview.
type FundOverview struct {
	Fund       core.Fund
	View       core.LedgerView
	Categories []core.Category
}

// Overview is the aggregated dashboard payload for one reporting period.
// The period is echoed back so a consumer can discard a response that
// arrives after the displayed period has changed.
type Overview struct {
	Period      core.Period
	Funds       []FundOverview
	TotalBudget decimal.Decimal
}

// BuildOverview reconciles every fund against its period transaction
// totals. When the aggregate query fails the overview falls back to zero
// totals rather than failing the whole page.
func (s *LedgerService) BuildOverview(ctx context.Context, period core.Period) (Overview, error) {
	funds, err := s.storage.ListFunds(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list funds: %w", err)
	}
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list categories: %w", err)
	}

	totals, err := s.storage.FundTotals(ctx, period)
	if err != nil {
		slog.ErrorContext(ctx, "Fund totals query failed, using zero totals",
			"error", err, "period", period.Key())
		totals = map[int64]decimal.Decimal{}
	}

	overview := Overview{
		Period:      period,
		TotalBudget: core.IncludedBudgetTotal(funds),
	}
	for _, f := range funds {
		overview.Funds = append(overview.Funds, FundOverview{
			Fund:       f,
			View:       core.LedgerViewFromTotal(f, totals[f.ID]),
			Categories: core.ResolveCategories(f, categories),
		})
	}
	return overview, nil
}
