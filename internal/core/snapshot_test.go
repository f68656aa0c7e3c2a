package core

import "testing"

func snap(id int64, assets, liabilities map[string]string) Snapshot {
	s := Snapshot{ID: id, Assets: map[string]AssetValue{}, Liabilities: map[string]AssetValue{}}
	for k, v := range assets {
		s.Assets[k] = AssetValue{Amount: dec(v)}
	}
	for k, v := range liabilities {
		s.Liabilities[k] = AssetValue{Amount: dec(v)}
	}
	return s
}

func TestTotals(t *testing.T) {
	s := snap(1,
		map[string]string{"checking": "1000", "pension": "5000"},
		map[string]string{"mortgage": "4500"},
	)
	got := Totals(s)
	if !got.Assets.Equal(dec("6000")) || !got.Liabilities.Equal(dec("4500")) {
		t.Fatalf("assets=%s liabilities=%s", got.Assets, got.Liabilities)
	}
	if !got.NetWorth.Equal(got.Assets.Sub(got.Liabilities)) {
		t.Fatalf("net worth %s != assets - liabilities", got.NetWorth)
	}
}

func TestDeltaAt(t *testing.T) {
	// Newest first.
	list := []Snapshot{
		snap(3, map[string]string{"a": "1200"}, map[string]string{"l": "100"}),
		snap(2, map[string]string{"a": "1000"}, map[string]string{"l": "150"}),
		snap(1, map[string]string{"a": "900"}, nil),
	}
	d, ok := DeltaAt(list, 0)
	if !ok {
		t.Fatal("expected delta for newest snapshot")
	}
	if !d.AssetsChange.Equal(dec("200")) || !d.LiabilitiesChange.Equal(dec("-50")) || !d.NetWorthChange.Equal(dec("250")) {
		t.Fatalf("delta = %+v", d)
	}

	if _, ok := DeltaAt(list, len(list)-1); ok {
		t.Fatal("oldest snapshot has no delta")
	}
	if _, ok := DeltaAt(list, -1); ok {
		t.Fatal("negative index has no delta")
	}

	// Each delta must equal the difference of the adjacent totals.
	for i := 0; i+1 < len(list); i++ {
		d, ok := DeltaAt(list, i)
		if !ok {
			t.Fatalf("missing delta at %d", i)
		}
		want := Totals(list[i]).NetWorth.Sub(Totals(list[i+1]).NetWorth)
		if !d.NetWorthChange.Equal(want) {
			t.Fatalf("delta at %d = %s, want %s", i, d.NetWorthChange, want)
		}
	}
}

func TestNetWorthChangePercent(t *testing.T) {
	if got, ok := NetWorthChangePercent(dec("250"), dec("750")); !ok || got != "33.3" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if got, ok := NetWorthChangePercent(dec("-150"), dec("1000")); !ok || got != "15.0" {
		t.Fatalf("negative change should render absolute: %q ok=%v", got, ok)
	}
	if _, ok := NetWorthChangePercent(dec("100"), dec("0")); ok {
		t.Fatal("zero previous net worth must suppress the percentage")
	}
}

func TestImproved(t *testing.T) {
	if !Improved(dec("0")) {
		t.Fatal("zero change counts as improved")
	}
	if !Improved(dec("5")) || Improved(dec("-5")) {
		t.Fatal("sign handling wrong")
	}
}

func TestDeleteAt(t *testing.T) {
	list := []Snapshot{snap(3, nil, nil), snap(2, nil, nil), snap(1, nil, nil)}
	out := DeleteAt(list, 1)
	if len(out) != 2 || out[0].ID != 3 || out[1].ID != 1 {
		t.Fatalf("got %+v", out)
	}
	if got := DeleteAt(list, 5); len(got) != len(list) {
		t.Fatal("out-of-range delete must be a no-op")
	}
}
