package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"taktziv/internal/sheets"
	"taktziv/internal/storage"
)

// BackupProcessorConfig holds configuration for the pending-snapshot poll
// loop.
type BackupProcessorConfig struct {
	// PollInterval is how often to check for pending snapshots.
	PollInterval time.Duration

	// BatchSize is the max number of snapshots to export per poll cycle.
	BatchSize int

	// RetryInterval is how often errored snapshots are requeued.
	RetryInterval time.Duration
}

// DefaultBackupProcessorConfig returns sensible defaults.
func DefaultBackupProcessorConfig() BackupProcessorConfig {
	return BackupProcessorConfig{
		PollInterval:  30 * time.Second,
		BatchSize:     10,
		RetryInterval: 10 * time.Minute,
	}
}

// BackupProcessor exports pending snapshots to the backup sheet. It is the
// safety net behind the AMQP consumer: snapshots whose queue message was
// lost, and snapshots created while no broker was configured, are picked up
// here.
type BackupProcessor struct {
	storage  *storage.Repository
	appender sheets.SnapshotAppender
	config   BackupProcessorConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewBackupProcessor(storage *storage.Repository, appender sheets.SnapshotAppender, config BackupProcessorConfig) *BackupProcessor {
	return &BackupProcessor{
		storage:  storage,
		appender: appender,
		config:   config,
	}
}

// Start begins the poll loop. Returns an error if already running.
func (p *BackupProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("backup processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Backup processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize)
	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *BackupProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Backup processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Backup processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	return nil
}

// IsRunning reports whether the poll loop is active.
func (p *BackupProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *BackupProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	pollTicker := time.NewTicker(p.config.PollInterval)
	defer pollTicker.Stop()

	retryTicker := time.NewTicker(p.config.RetryInterval)
	defer retryTicker.Stop()

	// Process immediately on startup.
	p.processBatch(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			p.processBatch(ctx)
		case <-retryTicker.C:
			p.requeueErrors(ctx)
		}
	}
}

// processBatch exports one batch of pending snapshots.
func (p *BackupProcessor) processBatch(ctx context.Context) {
	pending, err := p.storage.GetPendingSyncSnapshots(ctx, p.config.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch pending snapshots", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	slog.DebugContext(ctx, "Processing backup batch", "count", len(pending))

	for _, item := range pending {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := p.ExportSnapshot(ctx, item.ID); err != nil {
			slog.WarnContext(ctx, "Snapshot export failed", "id", item.ID, "error", err)
		}
	}
}

// ExportSnapshot appends one snapshot to the backup sheet and records the
// outcome. It is also the handler behind the AMQP consumer.
func (p *BackupProcessor) ExportSnapshot(ctx context.Context, id int64) error {
	snap, err := p.storage.GetSnapshot(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			// Deleted before export; nothing to back up.
			slog.InfoContext(ctx, "Snapshot gone before export, skipping", "id", id)
			return nil
		}
		return fmt.Errorf("get snapshot %d: %w", id, err)
	}

	ref, err := p.appender.Append(ctx, snap)
	if err != nil {
		if markErr := p.storage.MarkSnapshotSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark snapshot sync error",
				"id", id, "error", markErr)
		}
		return fmt.Errorf("append to backup sheet: %w", err)
	}

	if err := p.storage.MarkSnapshotSynced(ctx, id); err != nil {
		// The export itself succeeded; the row will be re-exported, which
		// is harmless for an append-only backup.
		slog.WarnContext(ctx, "Failed to mark snapshot synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Snapshot exported to backup sheet", "id", id, "sheets_ref", ref)
	return nil
}

// DrainPending exports pending snapshots until the queue is empty and
// returns how many were attempted. Used at worker startup to recover from
// downtime.
func (p *BackupProcessor) DrainPending(ctx context.Context) (int, error) {
	total := 0
	for {
		pending, err := p.storage.GetPendingSyncSnapshots(ctx, p.config.BatchSize)
		if err != nil {
			return total, fmt.Errorf("get pending snapshots: %w", err)
		}
		if len(pending) == 0 {
			return total, nil
		}
		failed := 0
		for _, item := range pending {
			total++
			if err := p.ExportSnapshot(ctx, item.ID); err != nil {
				failed++
				slog.WarnContext(ctx, "Snapshot export failed during drain",
					"id", item.ID, "error", err)
			}
		}
		if failed == len(pending) {
			// Nothing moved out of the pending state; stop rather than spin.
			return total, nil
		}
	}
}

func (p *BackupProcessor) requeueErrors(ctx context.Context) {
	n, err := p.storage.ResetSyncErrors(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to requeue errored snapshots", "error", err)
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "Requeued errored snapshots for export", "count", n)
	}
}
