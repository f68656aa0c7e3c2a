// Package backend selects and constructs the snapshot backup target the
// worker exports to.
package backend

import (
	"context"

	"taktziv/internal/sheets"
)

// CleanupFunc releases resources held by a backup target.
type CleanupFunc func() error

// Result contains the constructed backup target and optional cleanup.
type Result struct {
	Appender sheets.SnapshotAppender
	Cleanup  CleanupFunc
}

// Factory creates backup targets based on configuration.
type Factory interface {
	CreateTarget(ctx context.Context, config Config) (*Result, error)
}

// TargetType names a backup target implementation.
type TargetType string

const (
	// SheetsTarget exports to a Google spreadsheet.
	SheetsTarget TargetType = "sheets"
	// FileTarget exports to a local CSV file.
	FileTarget TargetType = "file"
	// MemoryTarget keeps exports in memory. Useful for tests and dry runs;
	// rows are lost on restart.
	MemoryTarget TargetType = "memory"
)

// String implements fmt.Stringer
func (t TargetType) String() string {
	return string(t)
}

// IsValid returns true if the target type is recognized.
func (t TargetType) IsValid() bool {
	switch t {
	case SheetsTarget, FileTarget, MemoryTarget:
		return true
	default:
		return false
	}
}
