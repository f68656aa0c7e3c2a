package memory

import (
	"context"
	"testing"

	"taktziv/internal/core"
)

func TestAppend(t *testing.T) {
	store := New()

	ref1, err := store.Append(context.Background(), core.Snapshot{ID: 1, Date: core.NewDate(2024, 1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	ref2, err := store.Append(context.Background(), core.Snapshot{ID: 2, Date: core.NewDate(2024, 2, 1)})
	if err != nil {
		t.Fatal(err)
	}

	if ref1 != "mem:1" || ref2 != "mem:2" {
		t.Errorf("refs = %q, %q", ref1, ref2)
	}

	items := store.Items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("items = %+v", items)
	}
}
