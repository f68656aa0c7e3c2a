package worker

import (
	"context"
	"fmt"
	"log/slog"

	"taktziv/internal/amqp"
	"taktziv/internal/services"
)

// SyncWorker bridges the AMQP queue and the backup processor: each queued
// message names one snapshot to export to the backup sheet.
type SyncWorker struct {
	processor *services.BackupProcessor
}

func NewSyncWorker(processor *services.BackupProcessor) *SyncWorker {
	return &SyncWorker{processor: processor}
}

// HandleSyncMessage processes a single snapshot sync message from AMQP.
// The message carries only the snapshot id; the row is re-read from storage
// so the export never uses stale balances.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SnapshotSyncMessage) error {
	slog.InfoContext(ctx, "Processing snapshot sync message",
		"id", msg.ID,
		"queued_at", msg.Timestamp)

	if err := w.processor.ExportSnapshot(ctx, msg.ID); err != nil {
		return fmt.Errorf("export snapshot %d: %w", msg.ID, err)
	}
	return nil
}

// StartupSyncCheck drains any snapshots left pending from before the worker
// started. This recovers from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	n, err := w.processor.DrainPending(ctx)
	if err != nil {
		return fmt.Errorf("startup sync check: %w", err)
	}
	if n == 0 {
		slog.InfoContext(ctx, "No pending snapshots found on startup")
		return nil
	}
	slog.InfoContext(ctx, "Startup sync completed", "processed", n)
	return nil
}
