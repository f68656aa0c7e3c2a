package storage

import (
	"context"
	"fmt"

	"taktziv/internal/core"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ListTransactions. Zero values mean "any".
type TransactionFilter struct {
	FundID       int64
	Month        int
	BudgetYearID int64
}

func (r *Repository) ListTransactions(ctx context.Context, filter TransactionFilter) ([]core.CashTransaction, error) {
	query := `
		SELECT id, fund_id, COALESCE(budget_year_id, 0), date, amount, description, month, year
		FROM cash_envelope_transactions WHERE 1=1`
	var args []any
	if filter.FundID != 0 {
		query += ` AND fund_id = ?`
		args = append(args, filter.FundID)
	}
	if filter.Month != 0 {
		query += ` AND month = ?`
		args = append(args, filter.Month)
	}
	if filter.BudgetYearID != 0 {
		query += ` AND budget_year_id = ?`
		args = append(args, filter.BudgetYearID)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.CashTransaction
	for rows.Next() {
		var (
			t      core.CashTransaction
			date   string
			amount string
		)
		if err := rows.Scan(&t.ID, &t.FundID, &t.BudgetYearID, &date, &amount, &t.Description, &t.Month, &t.Year); err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		if t.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		if t.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.CashTransaction) (core.CashTransaction, error) {
	var budgetYearID any
	if t.BudgetYearID != 0 {
		budgetYearID = t.BudgetYearID
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO cash_envelope_transactions (fund_id, budget_year_id, date, amount, description, month, year)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.FundID, budgetYearID, t.Date.ISO(), t.Amount.String(), t.Description, t.Month, t.Year)
	if err != nil {
		return core.CashTransaction{}, fmt.Errorf("create transaction: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return core.CashTransaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, t core.CashTransaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cash_envelope_transactions
		SET date = ?, amount = ?, description = ?, month = ?, year = ?
		WHERE id = ?`,
		t.Date.ISO(), t.Amount.String(), t.Description, t.Month, t.Year, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cash_envelope_transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return affectedOrNotFound(res)
}

// FundTotals nets signed transaction amounts per fund for one period.
// Amounts are summed as exact decimals, never as SQLite REALs.
func (r *Repository) FundTotals(ctx context.Context, period core.Period) (map[int64]decimal.Decimal, error) {
	query := `SELECT fund_id, amount FROM cash_envelope_transactions WHERE 1=1`
	var args []any
	if period.Month != 0 {
		query += ` AND month = ?`
		args = append(args, period.Month)
	}
	if period.BudgetYearID != 0 {
		query += ` AND budget_year_id = ?`
		args = append(args, period.BudgetYearID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fund totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var (
			fundID int64
			raw    string
		)
		if err := rows.Scan(&fundID, &raw); err != nil {
			return nil, fmt.Errorf("fund totals: %w", err)
		}
		amount, err := parseDecimal(raw)
		if err != nil {
			return nil, err
		}
		totals[fundID] = totals[fundID].Add(amount)
	}
	return totals, rows.Err()
}
