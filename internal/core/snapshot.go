package core

import "github.com/shopspring/decimal"

// AssetValue is one named balance inside a snapshot.
type AssetValue struct {
	Amount decimal.Decimal `json:"amount"`
}

// Snapshot is a point-in-time record of named asset and liability balances.
// Snapshot lists are ordered newest-first; a snapshot's change is measured
// against the immediately-following (older) entry.
type Snapshot struct {
	ID          int64
	Date        Date
	Assets      map[string]AssetValue
	Liabilities map[string]AssetValue
	Note        string
}

type SnapshotTotals struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal
}

type SnapshotDelta struct {
	AssetsChange      decimal.Decimal
	LiabilitiesChange decimal.Decimal
	NetWorthChange    decimal.Decimal
}

func sumValues(values map[string]AssetValue) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Amount)
	}
	return total
}

// Totals computes assets, liabilities and net worth for one snapshot.
func Totals(s Snapshot) SnapshotTotals {
	assets := sumValues(s.Assets)
	liabilities := sumValues(s.Liabilities)
	return SnapshotTotals{
		Assets:      assets,
		Liabilities: liabilities,
		NetWorth:    assets.Sub(liabilities),
	}
}

// Delta is the elementwise difference of totals between a snapshot and the
// next-older one.
func Delta(newer, older Snapshot) SnapshotDelta {
	nt := Totals(newer)
	ot := Totals(older)
	return SnapshotDelta{
		AssetsChange:      nt.Assets.Sub(ot.Assets),
		LiabilitiesChange: nt.Liabilities.Sub(ot.Liabilities),
		NetWorthChange:    nt.NetWorth.Sub(ot.NetWorth),
	}
}

// DeltaAt returns the delta for the snapshot at position i in a
// newest-first list. The oldest snapshot has nothing to compare against and
// reports ok=false.
func DeltaAt(snapshots []Snapshot, i int) (SnapshotDelta, bool) {
	if i < 0 || i+1 >= len(snapshots) {
		return SnapshotDelta{}, false
	}
	return Delta(snapshots[i], snapshots[i+1]), true
}

// NetWorthChangePercent renders |change / previous| × 100 to one decimal
// place. A zero previous net worth has no meaningful ratio; ok=false means
// no percentage is shown rather than an infinite value.
func NetWorthChangePercent(change, previous decimal.Decimal) (string, bool) {
	if previous.IsZero() {
		return "", false
	}
	pct := change.Div(previous).Mul(decimal.NewFromInt(100)).Abs()
	return pct.StringFixed(1), true
}

// Improved reports the direction indicator for a delta: zero counts as
// improved.
func Improved(change decimal.Decimal) bool {
	return !change.IsNegative()
}

// DeleteAt removes the snapshot at position i. Deltas are always derived,
// so neighbors need no adjustment beyond recomputation by the caller.
func DeleteAt(snapshots []Snapshot, i int) []Snapshot {
	if i < 0 || i >= len(snapshots) {
		return snapshots
	}
	out := make([]Snapshot, 0, len(snapshots)-1)
	out = append(out, snapshots[:i]...)
	return append(out, snapshots[i+1:]...)
}
