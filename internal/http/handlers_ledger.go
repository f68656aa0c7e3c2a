package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"taktziv/internal/core"
	"taktziv/internal/storage"
)

type transactionPayload struct {
	ID           int64           `json:"id,omitempty"`
	FundID       int64           `json:"fund_id"`
	BudgetYearID int64           `json:"budget_year_id,omitempty"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Month        int             `json:"month,omitempty"`
	Year         int             `json:"year,omitempty"`
}

// transactionRequest is the create body. Type selects the classic entry
// form; RawAmount selects the quick-entry form, where the amount arrives as
// typed, thousands separators included, and its sign decides the entry type.
type transactionRequest struct {
	transactionPayload
	Type      string `json:"type,omitempty"`
	RawAmount string `json:"raw_amount,omitempty"`
}

func transactionToPayload(t core.CashTransaction) transactionPayload {
	return transactionPayload{
		ID:           t.ID,
		FundID:       t.FundID,
		BudgetYearID: t.BudgetYearID,
		Date:         t.Date.ISO(),
		Amount:       t.Amount,
		Description:  t.Description,
		Month:        t.Month,
		Year:         t.Year,
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := storage.TransactionFilter{
		FundID:       queryInt(r, "fund_id", "fundId"),
		Month:        int(queryInt(r, "month")),
		BudgetYearID: queryInt(r, "budget_year_id", "budgetYearId"),
	}
	txs, err := s.repo.ListTransactions(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	payload := make([]transactionPayload, 0, len(txs))
	for _, t := range txs {
		payload = append(payload, transactionToPayload(t))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in transactionRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	date, err := core.ParseDate(in.Date)
	if err != nil {
		respondInvalid(w, "invalid date, want YYYY-MM-DD")
		return
	}
	if in.Month == 0 {
		in.Month = int(date.Month())
	}
	if in.Year == 0 {
		in.Year = date.Year()
	}

	// Quick entry: empty, non-numeric and zero input is a silent no-op.
	if in.RawAmount != "" || in.Type == "" {
		period := core.Period{Month: in.Month, BudgetYearID: in.BudgetYearID}
		created, ok, err := s.ledger.QuickAdd(r.Context(), in.FundID, in.RawAmount, in.Description, date, period, in.Year)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if !ok {
			respondNoContent(w)
			return
		}
		s.overviewCache.Purge()
		respondJSON(w, http.StatusCreated, transactionToPayload(created))
		return
	}

	entryType := core.TransactionType(in.Type)
	if entryType != core.Deposit && entryType != core.Withdrawal {
		respondInvalid(w, "type must be deposit or withdrawal")
		return
	}

	tx := core.CashTransaction{
		FundID:       in.FundID,
		BudgetYearID: in.BudgetYearID,
		Date:         date,
		Amount:       in.Amount,
		Description:  in.Description,
		Month:        in.Month,
		Year:         in.Year,
	}
	created, err := s.ledger.CreateTransaction(r.Context(), tx, entryType)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()
	respondJSON(w, http.StatusCreated, transactionToPayload(created))
}

// handleUpdateTransaction replaces a ledger entry in full. The stored
// amount stays signed; the same zero-amount and month rules as creation
// apply.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in transactionPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	date, err := core.ParseDate(in.Date)
	if err != nil {
		respondInvalid(w, "invalid date, want YYYY-MM-DD")
		return
	}
	if in.Month == 0 {
		in.Month = int(date.Month())
	}
	if in.Year == 0 {
		in.Year = date.Year()
	}

	tx := core.CashTransaction{
		ID:           id,
		FundID:       in.FundID,
		BudgetYearID: in.BudgetYearID,
		Date:         date,
		Amount:       in.Amount,
		Description:  in.Description,
		Month:        in.Month,
		Year:         in.Year,
	}
	if err := s.ledger.UpdateTransaction(r.Context(), tx); err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()
	respondJSON(w, http.StatusOK, transactionToPayload(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteTransaction(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()
	respondNoContent(w)
}
