package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDebt(t *testing.T, srv *Server, description, amount, direction string) debtPayload {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/debts", map[string]any{
		"amount":      amount,
		"description": description,
		"direction":   direction,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[debtPayload](t, rec)
}

func TestDebtPartition(t *testing.T) {
	srv := newTestServer(t)

	createTestDebt(t, srv, "loan to dani", "100", "owed_to_me")
	createTestDebt(t, srv, "credit card", "250", "i_owe")
	// Missing direction lands in the debtor bucket.
	createTestDebt(t, srv, "old row", "42", "")

	rec := do(t, srv, http.MethodGet, "/debts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	debts := decodeBody[debtListPayload](t, rec)
	assert.Len(t, debts.OwedToMe, 1)
	assert.Len(t, debts.IOwe, 2)
}

func TestDebtValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/debts", map[string]any{
		"amount": "0", "description": "zero", "direction": "i_owe",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, srv, http.MethodPost, "/debts", map[string]any{
		"amount": "10", "description": "  ", "direction": "i_owe",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDebtFieldEdits(t *testing.T) {
	srv := newTestServer(t)
	debt := createTestDebt(t, srv, "credit card", "250", "i_owe")
	path := "/debts/" + itoa(debt.ID)

	// Valid amount commits.
	rec := do(t, srv, http.MethodPatch, path, debtEditRequest{Field: "amount", Value: "300"})
	require.Equal(t, http.StatusOK, rec.Code)
	edited := decodeBody[debtPayload](t, rec)
	assert.True(t, edited.Amount.Equal(mustDecimal(t, "300")))

	// Discarded edits leave the row untouched.
	for _, bad := range []debtEditRequest{
		{Field: "amount", Value: "abc"},
		{Field: "amount", Value: "-5"},
		{Field: "amount", Value: "0"},
		{Field: "description", Value: "   "},
	} {
		rec = do(t, srv, http.MethodPatch, path, bad)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "edit %+v must be discarded", bad)
	}

	rec = do(t, srv, http.MethodGet, "/debts", nil)
	debts := decodeBody[debtListPayload](t, rec)
	require.Len(t, debts.IOwe, 1)
	assert.True(t, debts.IOwe[0].Amount.Equal(mustDecimal(t, "300")), "discarded edits must not change the stored amount")
	assert.Equal(t, "credit card", debts.IOwe[0].Description)

	// An empty note commits and clears.
	rec = do(t, srv, http.MethodPatch, path, debtEditRequest{Field: "note", Value: "call bank"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodPatch, path, debtEditRequest{Field: "note", Value: ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[debtPayload](t, rec).Note)

	// Unknown fields are a client error, not a discard.
	rec = do(t, srv, http.MethodPatch, path, debtEditRequest{Field: "direction", Value: "owed_to_me"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDebtDelete(t *testing.T) {
	srv := newTestServer(t)
	debt := createTestDebt(t, srv, "loan", "10", "i_owe")

	rec := do(t, srv, http.MethodDelete, "/debts/"+itoa(debt.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/debts/"+itoa(debt.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
