// Package adapters holds backup-target implementations of the sheets ports
// that are not backed by Google Sheets.
package adapters

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"taktziv/internal/core"
	ports "taktziv/internal/sheets"
)

// FileAppender writes snapshot backup rows to a local CSV file. It is the
// backup target when no spreadsheet is configured, so a worker deployment
// without Google credentials still produces a durable export.
type FileAppender struct {
	mu   sync.Mutex
	path string
}

var _ ports.SnapshotAppender = (*FileAppender)(nil)

func NewFileAppender(path string) (*FileAppender, error) {
	if path == "" {
		return nil, fmt.Errorf("backup file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create backup directory: %w", err)
		}
	}
	return &FileAppender{path: path}, nil
}

// Append writes one snapshot row and returns a file:line reference.
func (a *FileAppender) Append(ctx context.Context, s core.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat backup file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write([]string{"date", "assets", "liabilities", "net_worth", "breakdown", "note"}); err != nil {
			return "", fmt.Errorf("write backup header: %w", err)
		}
	}

	t := core.Totals(s)
	row := []string{
		s.Date.ISO(),
		t.Assets.String(),
		t.Liabilities.String(),
		t.NetWorth.String(),
		describeValues(s.Assets) + " / " + describeValues(s.Liabilities),
		s.Note,
	}
	if err := w.Write(row); err != nil {
		return "", fmt.Errorf("write backup row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush backup row: %w", err)
	}

	return fmt.Sprintf("%s@%d", filepath.Base(a.path), info.Size()), nil
}

func describeValues(values map[string]core.AssetValue) string {
	if len(values) == 0 {
		return "-"
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+values[name].Amount.String())
	}
	return strings.Join(parts, ", ")
}
