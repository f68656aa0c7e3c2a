package storage

import (
	"context"
	"fmt"

	"taktziv/internal/core"
)

func (r *Repository) ListBudgetYears(ctx context.Context) ([]core.BudgetYear, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, start_date, end_date, is_active FROM budget_years
		ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list budget years: %w", err)
	}
	defer rows.Close()

	var years []core.BudgetYear
	for rows.Next() {
		var (
			b        core.BudgetYear
			start    string
			end      string
			isActive int
		)
		if err := rows.Scan(&b.ID, &b.Name, &start, &end, &isActive); err != nil {
			return nil, fmt.Errorf("list budget years: %w", err)
		}
		if b.StartDate, err = core.ParseDate(start); err != nil {
			return nil, fmt.Errorf("list budget years: %w", err)
		}
		if b.EndDate, err = core.ParseDate(end); err != nil {
			return nil, fmt.Errorf("list budget years: %w", err)
		}
		b.IsActive = isActive != 0
		years = append(years, b)
	}
	return years, rows.Err()
}

// ActiveBudgetYear returns the single active budget year, ErrNotFound when
// none is active.
func (r *Repository) ActiveBudgetYear(ctx context.Context) (core.BudgetYear, error) {
	var (
		b        core.BudgetYear
		start    string
		end      string
		isActive int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, start_date, end_date, is_active FROM budget_years
		WHERE is_active = 1 LIMIT 1`).
		Scan(&b.ID, &b.Name, &start, &end, &isActive)
	if err != nil {
		return core.BudgetYear{}, wrapNotFound(err)
	}
	if b.StartDate, err = core.ParseDate(start); err != nil {
		return core.BudgetYear{}, err
	}
	if b.EndDate, err = core.ParseDate(end); err != nil {
		return core.BudgetYear{}, err
	}
	b.IsActive = true
	return b, nil
}

func (r *Repository) CreateBudgetYear(ctx context.Context, b core.BudgetYear) (core.BudgetYear, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO budget_years (name, start_date, end_date, is_active) VALUES (?, ?, ?, ?)`,
		b.Name, b.StartDate.ISO(), b.EndDate.ISO(), boolToInt(b.IsActive))
	if err != nil {
		return core.BudgetYear{}, fmt.Errorf("create budget year: %w", err)
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return core.BudgetYear{}, fmt.Errorf("create budget year: %w", err)
	}
	return b, nil
}

// ActivateBudgetYear makes the given year the single active one.
func (r *Repository) ActivateBudgetYear(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("activate budget year: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE budget_years SET is_active = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("activate budget year: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE budget_years SET is_active = 0 WHERE id != ?`, id); err != nil {
		return fmt.Errorf("activate budget year: %w", err)
	}
	return tx.Commit()
}

func (r *Repository) DeleteBudgetYear(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budget_years WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget year: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, color_class FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ColorClass); err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (name, color_class) VALUES (?, ?)`, c.Name, c.ColorClass)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *Repository) ListAssetTypes(ctx context.Context) ([]core.AssetType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, kind, is_default FROM asset_types ORDER BY kind, name`)
	if err != nil {
		return nil, fmt.Errorf("list asset types: %w", err)
	}
	defer rows.Close()

	var types []core.AssetType
	for rows.Next() {
		var (
			a         core.AssetType
			kind      string
			isDefault int
		)
		if err := rows.Scan(&a.ID, &a.Name, &kind, &isDefault); err != nil {
			return nil, fmt.Errorf("list asset types: %w", err)
		}
		a.Kind = core.AssetKind(kind)
		a.IsDefault = isDefault != 0
		types = append(types, a)
	}
	return types, rows.Err()
}

func (r *Repository) CreateAssetType(ctx context.Context, a core.AssetType) (core.AssetType, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO asset_types (name, kind, is_default) VALUES (?, ?, ?)`,
		a.Name, string(a.Kind), boolToInt(a.IsDefault))
	if err != nil {
		return core.AssetType{}, fmt.Errorf("create asset type: %w", err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return core.AssetType{}, fmt.Errorf("create asset type: %w", err)
	}
	return a, nil
}

func (r *Repository) UpdateAssetType(ctx context.Context, a core.AssetType) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE asset_types SET name = ?, kind = ?, is_default = ? WHERE id = ?`,
		a.Name, string(a.Kind), boolToInt(a.IsDefault), a.ID)
	if err != nil {
		return fmt.Errorf("update asset type: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *Repository) DeleteAssetType(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM asset_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete asset type: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *Repository) ListSettings(ctx context.Context) ([]core.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, value_type FROM system_settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []core.Setting
	for rows.Next() {
		var (
			s   core.Setting
			typ string
		)
		if err := rows.Scan(&s.Key, &s.Value, &typ); err != nil {
			return nil, fmt.Errorf("list settings: %w", err)
		}
		s.ValueType = core.ValueType(typ)
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *Repository) UpsertSetting(ctx context.Context, s core.Setting) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_settings (key, value, value_type) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, value_type = excluded.value_type`,
		s.Key, s.Value, string(s.ValueType))
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
