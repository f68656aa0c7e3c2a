// Package memory provides an in-memory SnapshotAppender for tests and for
// running without a configured backup target.
package memory

import (
	"context"
	"fmt"
	"sync"

	"taktziv/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Snapshot
}

func New() *Store {
	return &Store{}
}

// Append stores the snapshot and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, snap core.Snapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, snap)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Items returns a copy of everything appended so far.
func (s *Store) Items() []core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Snapshot(nil), s.items...)
}
