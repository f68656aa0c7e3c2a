package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taktziv/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFundCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fund, err := repo.CreateFund(ctx, core.Fund{
		Name:            "groceries",
		Type:            core.Monthly,
		Level:           core.LevelCash,
		Amount:          dec("500"),
		IncludeInBudget: true,
		ColorClass:      "bg-green",
	})
	require.NoError(t, err)
	require.NotZero(t, fund.ID)

	got, err := repo.GetFund(ctx, fund.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Name)
	assert.True(t, got.Amount.Equal(dec("500")))
	assert.True(t, got.IncludeInBudget)

	got.Amount = dec("600")
	got.IncludeInBudget = false
	require.NoError(t, repo.UpdateFund(ctx, got))

	updated, err := repo.GetFund(ctx, fund.ID)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("600")))
	assert.False(t, updated.IncludeInBudget)

	require.NoError(t, repo.DeleteFund(ctx, fund.ID))
	_, err = repo.GetFund(ctx, fund.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFundCategoryNormalization(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{Name: "food"})
	require.NoError(t, err)

	fund, err := repo.CreateFund(ctx, core.Fund{
		Name: "groceries", Type: core.Monthly, Level: core.LevelCash, Amount: dec("500"),
	})
	require.NoError(t, err)

	// Simulate a legacy row that references the category by name.
	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO fund_categories (fund_id, category_name) VALUES (?, ?)`, fund.ID, "food")
	require.NoError(t, err)

	funds, err := repo.ListFunds(ctx)
	require.NoError(t, err)
	require.Len(t, funds, 1)
	assert.Equal(t, []int64{cat.ID}, funds[0].CategoryIDs, "legacy name row should be rewritten to an id")
	assert.Empty(t, funds[0].CategoryNames)
}

func TestTransactionsAndFundTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fund, err := repo.CreateFund(ctx, core.Fund{
		Name: "cash", Type: core.Monthly, Level: core.LevelCash, Amount: dec("500"),
	})
	require.NoError(t, err)

	for _, amount := range []string{"200", "250", "-50", "-49"} {
		_, err := repo.CreateTransaction(ctx, core.CashTransaction{
			FundID: fund.ID,
			Date:   core.NewDate(2024, 6, 15),
			Amount: dec(amount),
			Month:  6,
			Year:   2024,
		})
		require.NoError(t, err)
	}
	// A transaction in another month must not count.
	_, err = repo.CreateTransaction(ctx, core.CashTransaction{
		FundID: fund.ID, Date: core.NewDate(2024, 7, 1), Amount: dec("1000"), Month: 7, Year: 2024,
	})
	require.NoError(t, err)

	totals, err := repo.FundTotals(ctx, core.Period{Month: 6})
	require.NoError(t, err)
	assert.True(t, totals[fund.ID].Equal(dec("351")), "got %s", totals[fund.ID])

	txs, err := repo.ListTransactions(ctx, TransactionFilter{FundID: fund.ID, Month: 6})
	require.NoError(t, err)
	assert.Len(t, txs, 4)

	require.NoError(t, repo.DeleteTransaction(ctx, txs[0].ID))
	txs, err = repo.ListTransactions(ctx, TransactionFilter{FundID: fund.ID, Month: 6})
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}

func TestSnapshotLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older, err := repo.CreateSnapshot(ctx, core.Snapshot{
		Date:   core.NewDate(2024, 1, 1),
		Assets: map[string]core.AssetValue{"checking": {Amount: dec("1000")}},
		Liabilities: map[string]core.AssetValue{
			"mortgage": {Amount: dec("400")},
		},
	})
	require.NoError(t, err)

	newer, err := repo.CreateSnapshot(ctx, core.Snapshot{
		Date:   core.NewDate(2024, 2, 1),
		Assets: map[string]core.AssetValue{"checking": {Amount: dec("1200")}},
		Note:   "after bonus",
	})
	require.NoError(t, err)

	list, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "snapshots must be newest-first")
	assert.Equal(t, older.ID, list[1].ID)
	assert.True(t, list[0].Assets["checking"].Amount.Equal(dec("1200")))
	assert.Equal(t, "after bonus", list[0].Note)

	pending, err := repo.GetPendingSyncSnapshots(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, repo.MarkSnapshotSynced(ctx, older.ID))
	require.NoError(t, repo.MarkSnapshotSyncError(ctx, newer.ID))

	pending, err = repo.GetPendingSyncSnapshots(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	n, err := repo.ResetSyncErrors(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	pending, err = repo.GetPendingSyncSnapshots(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, newer.ID, pending[0].ID)

	require.NoError(t, repo.DeleteSnapshot(ctx, older.ID))
	list, err = repo.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDebtDirectionNormalizedOnLoad(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	debt, err := repo.CreateDebt(ctx, core.Debt{
		Amount: dec("100"), Description: "loan", Direction: core.OwedToMe,
	})
	require.NoError(t, err)

	got, err := repo.GetDebt(ctx, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, core.OwedToMe, got.Direction)

	got.Note = "due friday"
	require.NoError(t, repo.UpdateDebt(ctx, got))

	debts, err := repo.ListDebts(ctx)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.Equal(t, "due friday", debts[0].Note)
}

func TestBudgetYearActivation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	y1, err := repo.CreateBudgetYear(ctx, core.BudgetYear{
		Name: "2023/24", StartDate: core.NewDate(2023, 9, 1), EndDate: core.NewDate(2024, 8, 31), IsActive: true,
	})
	require.NoError(t, err)
	y2, err := repo.CreateBudgetYear(ctx, core.BudgetYear{
		Name: "2024/25", StartDate: core.NewDate(2024, 9, 1), EndDate: core.NewDate(2025, 8, 31),
	})
	require.NoError(t, err)

	require.NoError(t, repo.ActivateBudgetYear(ctx, y2.ID))

	active, err := repo.ActiveBudgetYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, y2.ID, active.ID)

	years, err := repo.ListBudgetYears(ctx)
	require.NoError(t, err)
	for _, y := range years {
		if y.ID == y1.ID {
			assert.False(t, y.IsActive, "previous active year must be deactivated")
		}
	}

	assert.ErrorIs(t, repo.ActivateBudgetYear(ctx, 9999), ErrNotFound)
}

func TestAssetTypeDefaultsSeeded(t *testing.T) {
	repo := newTestRepo(t)

	types, err := repo.ListAssetTypes(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, types)

	var kinds []core.AssetKind
	for _, at := range types {
		kinds = append(kinds, at.Kind)
	}
	assert.Contains(t, kinds, core.KindAsset)
	assert.Contains(t, kinds, core.KindLiability)
}

func TestSettingsUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertSetting(ctx, core.Setting{
		Key: core.KeyTithePercentage, Value: "12", ValueType: core.ValueNumber,
	}))
	require.NoError(t, repo.UpsertSetting(ctx, core.Setting{
		Key: core.KeyTithePercentage, Value: "15", ValueType: core.ValueNumber,
	}))

	list, err := repo.ListSettings(ctx)
	require.NoError(t, err)

	settings := core.SettingsFromList(list)
	assert.Equal(t, 15.0, settings.TithePercentage)
	assert.Equal(t, "ILS", settings.DefaultCurrency, "absent keys keep defaults")
}

func TestTaskCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, core.Task{Title: "renew insurance", Important: true})
	require.NoError(t, err)

	task.Completed = true
	require.NoError(t, repo.UpdateTask(ctx, task))

	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	require.NoError(t, repo.DeleteTask(ctx, task.ID))
	_, err = repo.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
