package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"taktziv/internal/core"
)

type debtPayload struct {
	ID          int64           `json:"id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Note        string          `json:"note,omitempty"`
	Direction   string          `json:"direction"`
}

type debtListPayload struct {
	OwedToMe []debtPayload `json:"owed_to_me"`
	IOwe     []debtPayload `json:"i_owe"`
}

func debtToPayload(d core.Debt) debtPayload {
	return debtPayload{
		ID:          d.ID,
		Amount:      d.Amount,
		Description: d.Description,
		Note:        d.Note,
		Direction:   string(d.Direction),
	}
}

func debtsToPayloads(debts []core.Debt) []debtPayload {
	out := make([]debtPayload, 0, len(debts))
	for _, d := range debts {
		out = append(out, debtToPayload(d))
	}
	return out
}

// handleListDebts returns debts partitioned into the creditor and debtor
// buckets.
func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.repo.ListDebts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	owedToMe, iOwe := core.PartitionDebts(debts)
	respondJSON(w, http.StatusOK, debtListPayload{
		OwedToMe: debtsToPayloads(owedToMe),
		IOwe:     debtsToPayloads(iOwe),
	})
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var in debtPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	debt := core.Debt{
		Amount:      in.Amount,
		Description: in.Description,
		Note:        in.Note,
		Direction:   core.NormalizeDirection(in.Direction),
	}
	if err := debt.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.repo.CreateDebt(r.Context(), debt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, debtToPayload(created))
}

type debtEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// handleEditDebt commits a single-field edit. A value that fails its commit
// rule is rejected with 422 and the stored row is left untouched; the
// client restores the prior display value.
func (s *Server) handleEditDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in debtEditRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	debt, err := s.repo.GetDebt(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	switch core.DebtField(in.Field) {
	case core.FieldAmount, core.FieldDescription, core.FieldNote:
	default:
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown field " + in.Field})
		return
	}

	if err := debt.ApplyEdit(core.DebtField(in.Field), in.Value); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.repo.UpdateDebt(r.Context(), debt); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, debtToPayload(debt))
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteDebt(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondNoContent(w)
}
