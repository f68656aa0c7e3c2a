package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Monthly FundType = "monthly"
	Annual  FundType = "annual"
	Savings FundType = "savings"
)

// Fund display/aggregation tiers. Level 1 is the single cash-managed
// envelope reconciled against its transaction ledger, level 2 reconciles
// budget against an authoritative spent figure, level 3 shows a flat amount.
const (
	LevelCash        = 1
	LevelBudgetSpent = 2
	LevelFlat        = 3
)

type (
	FundType string

	Date struct {
		time.Time
	}

	Fund struct {
		ID              int64
		Name            string
		Type            FundType
		Level           int
		Amount          decimal.Decimal
		Spent           decimal.Decimal // level 2 only, authoritative from storage
		IncludeInBudget bool
		ColorClass      string
		// CategoryIDs is the canonical relation. CategoryNames carries
		// legacy rows that referenced categories by name; see
		// ResolveCategories.
		CategoryIDs   []int64
		CategoryNames []string
	}

	// CashTransaction is a signed ledger entry against a level-1 fund.
	// Positive amounts are deposits, negative amounts withdrawals.
	CashTransaction struct {
		ID           int64
		FundID       int64
		BudgetYearID int64 // 0 when not tied to a budget year
		Date         Date
		Amount       decimal.Decimal
		Description  string
		Month        int
		Year         int
	}

	Task struct {
		ID        int64
		Title     string
		Important bool
		Completed bool
	}

	BudgetYear struct {
		ID        int64
		Name      string
		StartDate Date
		EndDate   Date
		IsActive  bool
	}

	Category struct {
		ID         int64
		Name       string
		ColorClass string
	}

	AssetType struct {
		ID        int64
		Name      string
		Kind      AssetKind
		IsDefault bool
	}

	AssetKind string
)

const (
	KindAsset     AssetKind = "asset"
	KindLiability AssetKind = "liability"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrZeroAmount       = errors.New("amount must not be zero")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidLevel     = errors.New("invalid fund level")
	ErrInvalidFundType  = errors.New("invalid fund type")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrMissingFund      = errors.New("missing fund reference")
	ErrNotCashFund      = errors.New("fund does not keep a cash ledger")
)

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// ISO renders the date as YYYY-MM-DD, the wire format for all dates.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (f Fund) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	switch f.Type {
	case Monthly, Annual, Savings:
	default:
		return ErrInvalidFundType
	}
	if f.Level < LevelCash || f.Level > LevelFlat {
		return ErrInvalidLevel
	}
	if f.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (t CashTransaction) Validate() error {
	if t.FundID <= 0 {
		return ErrMissingFund
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	if t.Month < 1 || t.Month > 12 {
		return ErrInvalidMonth
	}
	return t.Date.Validate()
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// VisibleTasks filters out completed tasks; the list view never shows them.
func VisibleTasks(tasks []Task) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			visible = append(visible, t)
		}
	}
	return visible
}

func (b BudgetYear) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if err := b.StartDate.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}
	if err := b.EndDate.Validate(); err != nil {
		return errors.New("invalid end date: " + err.Error())
	}
	if b.EndDate.Before(b.StartDate.Time) {
		return errors.New("end date must not precede start date")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (a AssetType) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	switch a.Kind {
	case KindAsset, KindLiability:
	default:
		return errors.New("invalid asset type kind")
	}
	return nil
}
