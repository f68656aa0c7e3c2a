package storage

import (
	"context"
	"fmt"

	"taktziv/internal/core"
)

func (r *Repository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, description, note, direction FROM debts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		var (
			d         core.Debt
			amount    string
			direction string
		)
		if err := rows.Scan(&d.ID, &amount, &d.Description, &d.Note, &direction); err != nil {
			return nil, fmt.Errorf("list debts: %w", err)
		}
		if d.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		d.Direction = core.NormalizeDirection(direction)
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (r *Repository) GetDebt(ctx context.Context, id int64) (core.Debt, error) {
	var (
		d         core.Debt
		amount    string
		direction string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, amount, description, note, direction FROM debts WHERE id = ?`, id).
		Scan(&d.ID, &amount, &d.Description, &d.Note, &direction)
	if err != nil {
		return core.Debt{}, wrapNotFound(err)
	}
	if d.Amount, err = parseDecimal(amount); err != nil {
		return core.Debt{}, err
	}
	d.Direction = core.NormalizeDirection(direction)
	return d, nil
}

func (r *Repository) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO debts (amount, description, note, direction) VALUES (?, ?, ?, ?)`,
		d.Amount.String(), d.Description, d.Note, string(d.Direction))
	if err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return d, nil
}

func (r *Repository) UpdateDebt(ctx context.Context, d core.Debt) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE debts SET amount = ?, description = ?, note = ?, direction = ? WHERE id = ?`,
		d.Amount.String(), d.Description, d.Note, string(d.Direction), d.ID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *Repository) DeleteDebt(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return affectedOrNotFound(res)
}
