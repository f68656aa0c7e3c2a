package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if d.ISO() != "2024-06-01" {
		t.Fatalf("round trip = %q", d.ISO())
	}
	if _, err := ParseDate("01/06/2024"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFundValidate(t *testing.T) {
	valid := Fund{Name: "groceries", Type: Monthly, Level: LevelCash, Amount: dec("500")}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid fund rejected: %v", err)
	}

	cases := []struct {
		name string
		f    Fund
		err  error
	}{
		{"blank name", Fund{Name: " ", Type: Monthly, Level: 1}, ErrEmptyName},
		{"bad type", Fund{Name: "x", Type: "weekly", Level: 1}, ErrInvalidFundType},
		{"level too low", Fund{Name: "x", Type: Annual, Level: 0}, ErrInvalidLevel},
		{"level too high", Fund{Name: "x", Type: Annual, Level: 4}, ErrInvalidLevel},
		{"negative amount", Fund{Name: "x", Type: Savings, Level: 2, Amount: dec("-1")}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.f.Validate(); !errors.Is(err, tc.err) {
				t.Fatalf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestCashTransactionValidate(t *testing.T) {
	valid := CashTransaction{FundID: 1, Amount: dec("-50"), Month: 6, Year: 2024, Date: NewDate(2024, 6, 1)}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name string
		tx   CashTransaction
		err  error
	}{
		{"missing fund", CashTransaction{Amount: dec("1"), Month: 1, Date: NewDate(2024, 1, 1)}, ErrMissingFund},
		{"zero amount", CashTransaction{FundID: 1, Amount: dec("0"), Month: 1, Date: NewDate(2024, 1, 1)}, ErrZeroAmount},
		{"month out of range", CashTransaction{FundID: 1, Amount: dec("1"), Month: 13, Date: NewDate(2024, 1, 1)}, ErrInvalidMonth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tx.Validate(); !errors.Is(err, tc.err) {
				t.Fatalf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestBudgetYearValidate(t *testing.T) {
	valid := BudgetYear{Name: "2024/25", StartDate: NewDate(2024, 9, 1), EndDate: NewDate(2025, 8, 31)}
	if err := valid.Validate(); err != nil {
		t.Fatal(err)
	}

	reversed := BudgetYear{Name: "x", StartDate: NewDate(2025, 1, 1), EndDate: NewDate(2024, 1, 1)}
	if err := reversed.Validate(); err == nil {
		t.Fatal("end before start must be rejected")
	}
}

func TestVisibleTasks(t *testing.T) {
	tasks := []Task{
		{ID: 1, Title: "a", Completed: false},
		{ID: 2, Title: "b", Completed: true},
		{ID: 3, Title: "c", Completed: false},
	}
	visible := VisibleTasks(tasks)
	if len(visible) != 2 || visible[0].ID != 1 || visible[1].ID != 3 {
		t.Fatalf("visible = %+v", visible)
	}
}

func TestAssetTypeValidate(t *testing.T) {
	if err := (AssetType{Name: "pension", Kind: KindAsset}).Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (AssetType{Name: "x", Kind: "equity"}).Validate(); err == nil {
		t.Fatal("invalid kind accepted")
	}
}
