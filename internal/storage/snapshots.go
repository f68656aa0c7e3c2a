package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taktziv/internal/core"
)

// PendingSyncSnapshot is the minimal row the backup queue needs.
type PendingSyncSnapshot struct {
	ID        int64
	CreatedAt time.Time
}

// ListSnapshots returns snapshots newest-first.
func (r *Repository) ListSnapshots(ctx context.Context) ([]core.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, assets, liabilities, note
		FROM snapshots ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []core.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func (r *Repository) GetSnapshot(ctx context.Context, id int64) (core.Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, assets, liabilities, note FROM snapshots WHERE id = ?`, id)
	s, err := scanSnapshot(row)
	if err != nil {
		return core.Snapshot{}, wrapNotFound(err)
	}
	return s, nil
}

func (r *Repository) CreateSnapshot(ctx context.Context, s core.Snapshot) (core.Snapshot, error) {
	assets, err := json.Marshal(s.Assets)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("encode snapshot assets: %w", err)
	}
	liabilities, err := json.Marshal(s.Liabilities)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("encode snapshot liabilities: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (date, assets, liabilities, note) VALUES (?, ?, ?, ?)`,
		s.Date.ISO(), string(assets), string(liabilities), s.Note)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("create snapshot: %w", err)
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return core.Snapshot{}, fmt.Errorf("create snapshot: %w", err)
	}
	return s, nil
}

func (r *Repository) DeleteSnapshot(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return affectedOrNotFound(res)
}

// GetPendingSyncSnapshots returns snapshots not yet exported to the backup
// sheet, oldest first.
func (r *Repository) GetPendingSyncSnapshots(ctx context.Context, limit int) ([]PendingSyncSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at FROM snapshots
		WHERE sync_status = 'pending'
		ORDER BY id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync snapshots: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncSnapshot
	for rows.Next() {
		var (
			p       PendingSyncSnapshot
			created string
		)
		if err := rows.Scan(&p.ID, &created); err != nil {
			return nil, fmt.Errorf("get pending sync snapshots: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
			p.CreatedAt = t
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// MarkSnapshotSynced records a successful backup export.
func (r *Repository) MarkSnapshotSynced(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE snapshots SET sync_status = 'synced', synced_at = datetime('now')
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark snapshot synced: %w", err)
	}
	return affectedOrNotFound(res)
}

// MarkSnapshotSyncError flags a snapshot whose backup export failed. The
// periodic retry loop picks it up again after resetting to pending.
func (r *Repository) MarkSnapshotSyncError(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE snapshots SET sync_status = 'error' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark snapshot sync error: %w", err)
	}
	return affectedOrNotFound(res)
}

// ResetSyncErrors requeues errored snapshots for another export attempt.
func (r *Repository) ResetSyncErrors(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE snapshots SET sync_status = 'pending' WHERE sync_status = 'error'`)
	if err != nil {
		return 0, fmt.Errorf("reset sync errors: %w", err)
	}
	return res.RowsAffected()
}

func scanSnapshot(s rowScanner) (core.Snapshot, error) {
	var (
		snap        core.Snapshot
		date        string
		assets      string
		liabilities string
	)
	if err := s.Scan(&snap.ID, &date, &assets, &liabilities, &snap.Note); err != nil {
		return core.Snapshot{}, err
	}

	var err error
	if snap.Date, err = core.ParseDate(date); err != nil {
		return core.Snapshot{}, fmt.Errorf("parse snapshot date: %w", err)
	}
	if err := json.Unmarshal([]byte(assets), &snap.Assets); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode snapshot assets: %w", err)
	}
	if err := json.Unmarshal([]byte(liabilities), &snap.Liabilities); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode snapshot liabilities: %w", err)
	}
	return snap, nil
}
