package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taktziv/internal/core"
	"taktziv/internal/sheets/memory"
)

type failingAppender struct{}

func (failingAppender) Append(context.Context, core.Snapshot) (string, error) {
	return "", errors.New("sheets unavailable")
}

func TestExportSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	proc := NewBackupProcessor(repo, store, DefaultBackupProcessorConfig())
	ctx := context.Background()

	snap, err := repo.CreateSnapshot(ctx, core.Snapshot{
		Date:   core.NewDate(2024, 3, 1),
		Assets: map[string]core.AssetValue{"checking": {Amount: dec("1000")}},
	})
	require.NoError(t, err)

	require.NoError(t, proc.ExportSnapshot(ctx, snap.ID))
	assert.Len(t, store.Items(), 1)

	pending, err := repo.GetPendingSyncSnapshots(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "exported snapshot must leave the pending queue")
}

func TestExportSnapshotMissingRowIsSkipped(t *testing.T) {
	repo := newTestRepo(t)
	proc := NewBackupProcessor(repo, memory.New(), DefaultBackupProcessorConfig())

	assert.NoError(t, proc.ExportSnapshot(context.Background(), 9999),
		"a snapshot deleted before export is not an error")
}

func TestExportSnapshotMarksError(t *testing.T) {
	repo := newTestRepo(t)
	proc := NewBackupProcessor(repo, failingAppender{}, DefaultBackupProcessorConfig())
	ctx := context.Background()

	snap, err := repo.CreateSnapshot(ctx, core.Snapshot{Date: core.NewDate(2024, 3, 1)})
	require.NoError(t, err)

	require.Error(t, proc.ExportSnapshot(ctx, snap.ID))

	pending, err := repo.GetPendingSyncSnapshots(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "errored snapshot must not stay pending")

	n, err := repo.ResetSyncErrors(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestBackupProcessorLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	proc := NewBackupProcessor(repo, memory.New(), BackupProcessorConfig{
		PollInterval:  10 * time.Millisecond,
		BatchSize:     5,
		RetryInterval: time.Hour,
	})
	ctx := context.Background()

	require.NoError(t, proc.Start(ctx))
	assert.True(t, proc.IsRunning())
	assert.Error(t, proc.Start(ctx), "double start must fail")

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, proc.Stop(stopCtx))
	assert.False(t, proc.IsRunning())
	assert.NoError(t, proc.Stop(stopCtx), "stop is idempotent")
}

func TestBackupProcessorDrainsPending(t *testing.T) {
	repo := newTestRepo(t)
	store := memory.New()
	proc := NewBackupProcessor(repo, store, BackupProcessorConfig{
		PollInterval:  10 * time.Millisecond,
		BatchSize:     5,
		RetryInterval: time.Hour,
	})
	ctx := context.Background()

	for m := 1; m <= 3; m++ {
		_, err := repo.CreateSnapshot(ctx, core.Snapshot{Date: core.NewDate(2024, m, 1)})
		require.NoError(t, err)
	}

	require.NoError(t, proc.Start(ctx))
	defer proc.Stop(ctx)

	require.Eventually(t, func() bool {
		pending, err := repo.GetPendingSyncSnapshots(ctx, 10)
		return err == nil && len(pending) == 0
	}, 2*time.Second, 20*time.Millisecond, "poll loop should drain the pending queue")
	assert.Len(t, store.Items(), 3)
}
