package google

import (
	"testing"

	"github.com/shopspring/decimal"

	"taktziv/internal/core"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRowForSnapshot(t *testing.T) {
	s := core.Snapshot{
		Date: core.NewDate(2024, 3, 1),
		Assets: map[string]core.AssetValue{
			"pension":  {Amount: dec("5000")},
			"checking": {Amount: dec("1000")},
		},
		Liabilities: map[string]core.AssetValue{
			"mortgage": {Amount: dec("4500")},
		},
		Note: "quarterly",
	}

	row := rowForSnapshot(s)
	if len(row) != 6 {
		t.Fatalf("row has %d cells, want 6", len(row))
	}
	if row[0] != "2024-03-01" {
		t.Errorf("date cell = %v", row[0])
	}
	if row[1] != "6000" || row[2] != "4500" || row[3] != "1500" {
		t.Errorf("totals = %v / %v / %v", row[1], row[2], row[3])
	}
	if row[4] != "checking=1000, pension=5000 / mortgage=4500" {
		t.Errorf("breakdown = %v", row[4])
	}
	if row[5] != "quarterly" {
		t.Errorf("note = %v", row[5])
	}
}

func TestDescribeValuesEmpty(t *testing.T) {
	if got := describeValues(nil); got != "-" {
		t.Errorf("describeValues(nil) = %q", got)
	}
}
