package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetYearActivationOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/budget-years", budgetYearPayload{
		Name: "2024", StartDate: "2024-01-01", EndDate: "2024-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decodeBody[budgetYearPayload](t, rec)

	rec = do(t, srv, http.MethodPost, "/budget-years", budgetYearPayload{
		Name: "2025", StartDate: "2025-01-01", EndDate: "2025-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decodeBody[budgetYearPayload](t, rec)

	rec = do(t, srv, http.MethodPost, "/budget-years/"+itoa(first.ID)+"/activate", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, srv, http.MethodPost, "/budget-years/"+itoa(second.ID)+"/activate", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/budget-years", nil)
	years := decodeBody[[]budgetYearPayload](t, rec)
	require.Len(t, years, 2)

	activeCount := 0
	for _, y := range years {
		if y.IsActive {
			activeCount++
			assert.Equal(t, second.ID, y.ID, "last activated year is the active one")
		}
	}
	assert.Equal(t, 1, activeCount, "exactly one budget year is active")

	rec = do(t, srv, http.MethodPost, "/budget-years/9999/activate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBudgetYearValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/budget-years", budgetYearPayload{
		Name: "backwards", StartDate: "2024-12-31", EndDate: "2024-01-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, srv, http.MethodPost, "/budget-years", budgetYearPayload{
		Name: "bad date", StartDate: "01/01/2024", EndDate: "2024-12-31",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/categories", categoryPayload{Name: "food", ColorClass: "green"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[categoryPayload](t, rec)

	rec = do(t, srv, http.MethodPost, "/categories", categoryPayload{Name: "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, srv, http.MethodGet, "/categories", nil)
	categories := decodeBody[[]categoryPayload](t, rec)
	require.Len(t, categories, 1)
	assert.Equal(t, "food", categories[0].Name)

	rec = do(t, srv, http.MethodDelete, "/categories/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAssetTypeEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// The schema seeds default asset and liability types.
	rec := do(t, srv, http.MethodGet, "/asset-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	seeded := decodeBody[[]assetTypePayload](t, rec)
	assert.NotEmpty(t, seeded)

	rec = do(t, srv, http.MethodPost, "/asset-types", assetTypePayload{Name: "crypto", Kind: "asset"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[assetTypePayload](t, rec)

	rec = do(t, srv, http.MethodPost, "/asset-types", assetTypePayload{Name: "bad", Kind: "equity"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	created.Name = "cryptocurrency"
	rec = do(t, srv, http.MethodPut, "/asset-types/"+itoa(created.ID), created)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cryptocurrency", decodeBody[assetTypePayload](t, rec).Name)

	rec = do(t, srv, http.MethodDelete, "/asset-types/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
