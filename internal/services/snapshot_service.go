package services

import (
	"context"
	"fmt"
	"log/slog"

	"taktziv/internal/core"
	"taktziv/internal/storage"
)

// SyncPublisher queues a snapshot for backup export.
type SyncPublisher interface {
	PublishSnapshotSync(ctx context.Context, id int64) error
}

// SnapshotService persists net-worth snapshots and queues them for backup.
type SnapshotService struct {
	storage   *storage.Repository
	publisher SyncPublisher
}

// NewSnapshotService creates the service. publisher may be nil when no
// broker is configured; snapshots are then picked up by the periodic
// pending-sync poll instead.
func NewSnapshotService(storage *storage.Repository, publisher SyncPublisher) *SnapshotService {
	return &SnapshotService{storage: storage, publisher: publisher}
}

// Create validates and persists a snapshot, then queues the backup export.
// A publish failure never fails the request; the row stays pending and the
// worker's poll loop retries it.
func (s *SnapshotService) Create(ctx context.Context, snap core.Snapshot) (core.Snapshot, error) {
	if err := snap.Date.Validate(); err != nil {
		return core.Snapshot{}, fmt.Errorf("invalid snapshot date: %w", err)
	}
	if snap.Assets == nil {
		snap.Assets = map[string]core.AssetValue{}
	}
	if snap.Liabilities == nil {
		snap.Liabilities = map[string]core.AssetValue{}
	}

	created, err := s.storage.CreateSnapshot(ctx, snap)
	if err != nil {
		return core.Snapshot{}, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSnapshotSync(ctx, created.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish snapshot sync message",
				"id", created.ID, "error", err)
		}
	}

	slog.InfoContext(ctx, "Snapshot created", "id", created.ID, "date", created.Date.ISO())
	return created, nil
}

func (s *SnapshotService) Delete(ctx context.Context, id int64) error {
	return s.storage.DeleteSnapshot(ctx, id)
}

// SnapshotView is one snapshot with its derived totals and, when an older
// snapshot exists, the change against it.
type SnapshotView struct {
	Snapshot      core.Snapshot
	Totals        core.SnapshotTotals
	Delta         *core.SnapshotDelta
	ChangePercent string
	HasPercent    bool
	Improved      bool
}

// ListWithDeltas returns snapshots newest-first, each annotated with totals
// and the delta against the next-older entry. The oldest snapshot carries
// no delta.
func (s *SnapshotService) ListWithDeltas(ctx context.Context) ([]SnapshotView, error) {
	snapshots, err := s.storage.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]SnapshotView, 0, len(snapshots))
	for i, snap := range snapshots {
		view := SnapshotView{
			Snapshot: snap,
			Totals:   core.Totals(snap),
		}
		if delta, ok := core.DeltaAt(snapshots, i); ok {
			view.Delta = &delta
			view.Improved = core.Improved(delta.NetWorthChange)
			previous := core.Totals(snapshots[i+1]).NetWorth
			view.ChangePercent, view.HasPercent = core.NetWorthChangePercent(delta.NetWorthChange, previous)
		}
		views = append(views, view)
	}
	return views, nil
}
