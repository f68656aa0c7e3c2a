// Package sheets defines the outbound ports for the snapshot backup
// exporter.
package sheets

import (
	"context"

	"taktziv/internal/core"
)

// SnapshotAppender writes one snapshot row to the backup target.
type SnapshotAppender interface {
	Append(ctx context.Context, s core.Snapshot) (rowRef string, err error)
}
