package storage

import (
	"context"
	"fmt"

	"taktziv/internal/core"
)

func (r *Repository) ListFunds(ctx context.Context) ([]core.Fund, error) {
	if err := r.normalizeFundCategories(ctx); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, level, amount, spent, include_in_budget, color_class
		FROM funds ORDER BY level, id`)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	defer rows.Close()

	var funds []core.Fund
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		funds = append(funds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}

	for i := range funds {
		if err := r.loadFundCategories(ctx, &funds[i]); err != nil {
			return nil, err
		}
	}
	return funds, nil
}

func (r *Repository) GetFund(ctx context.Context, id int64) (core.Fund, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, level, amount, spent, include_in_budget, color_class
		FROM funds WHERE id = ?`, id)
	f, err := scanFund(row)
	if err != nil {
		return core.Fund{}, wrapNotFound(err)
	}
	if err := r.loadFundCategories(ctx, &f); err != nil {
		return core.Fund{}, err
	}
	return f, nil
}

func (r *Repository) CreateFund(ctx context.Context, f core.Fund) (core.Fund, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO funds (name, type, level, amount, spent, include_in_budget, color_class)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Name, string(f.Type), f.Level, f.Amount.String(), f.Spent.String(),
		boolToInt(f.IncludeInBudget), f.ColorClass)
	if err != nil {
		return core.Fund{}, fmt.Errorf("create fund: %w", err)
	}
	f.ID, err = res.LastInsertId()
	if err != nil {
		return core.Fund{}, fmt.Errorf("create fund: %w", err)
	}
	if err := r.replaceFundCategories(ctx, f.ID, f.CategoryIDs); err != nil {
		return core.Fund{}, err
	}
	return f, nil
}

func (r *Repository) UpdateFund(ctx context.Context, f core.Fund) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE funds SET name = ?, type = ?, level = ?, amount = ?, spent = ?,
			include_in_budget = ?, color_class = ?
		WHERE id = ?`,
		f.Name, string(f.Type), f.Level, f.Amount.String(), f.Spent.String(),
		boolToInt(f.IncludeInBudget), f.ColorClass, f.ID)
	if err != nil {
		return fmt.Errorf("update fund: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	return r.replaceFundCategories(ctx, f.ID, f.CategoryIDs)
}

func (r *Repository) DeleteFund(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM funds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete fund: %w", err)
	}
	return affectedOrNotFound(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFund(s rowScanner) (core.Fund, error) {
	var (
		f            core.Fund
		typ          string
		amount       string
		spent        string
		includeInBgt int
	)
	if err := s.Scan(&f.ID, &f.Name, &typ, &f.Level, &amount, &spent, &includeInBgt, &f.ColorClass); err != nil {
		return core.Fund{}, err
	}
	f.Type = core.FundType(typ)
	f.IncludeInBudget = includeInBgt != 0

	var err error
	if f.Amount, err = parseDecimal(amount); err != nil {
		return core.Fund{}, err
	}
	if f.Spent, err = parseDecimal(spent); err != nil {
		return core.Fund{}, err
	}
	return f, nil
}

func (r *Repository) loadFundCategories(ctx context.Context, f *core.Fund) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category_id, category_name FROM fund_categories WHERE fund_id = ?`, f.ID)
	if err != nil {
		return fmt.Errorf("load fund categories: %w", err)
	}
	defer rows.Close()

	f.CategoryIDs = nil
	f.CategoryNames = nil
	for rows.Next() {
		var (
			id   *int64
			name *string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("load fund categories: %w", err)
		}
		switch {
		case id != nil:
			f.CategoryIDs = append(f.CategoryIDs, *id)
		case name != nil:
			f.CategoryNames = append(f.CategoryNames, *name)
		}
	}
	return rows.Err()
}

func (r *Repository) replaceFundCategories(ctx context.Context, fundID int64, categoryIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace fund categories: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fund_categories WHERE fund_id = ?`, fundID); err != nil {
		return fmt.Errorf("replace fund categories: %w", err)
	}
	for _, cid := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fund_categories (fund_id, category_id) VALUES (?, ?)`, fundID, cid); err != nil {
			return fmt.Errorf("replace fund categories: %w", err)
		}
	}
	return tx.Commit()
}

// normalizeFundCategories rewrites legacy name-based category links to id
// references where a category with that name now exists. Names with no
// matching category are left for display-time fallback.
func (r *Repository) normalizeFundCategories(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE fund_categories
		SET category_id = (SELECT c.id FROM categories c WHERE c.name = fund_categories.category_name),
		    category_name = NULL
		WHERE category_id IS NULL
		  AND category_name IS NOT NULL
		  AND EXISTS (SELECT 1 FROM categories c WHERE c.name = fund_categories.category_name)`)
	if err != nil {
		return fmt.Errorf("normalize fund categories: %w", err)
	}
	return nil
}
