package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"taktziv/internal/core"
	"taktziv/internal/services"
)

type fundPayload struct {
	ID              int64           `json:"id,omitempty"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Level           int             `json:"level"`
	Amount          decimal.Decimal `json:"amount"`
	Spent           decimal.Decimal `json:"spent"`
	IncludeInBudget bool            `json:"include_in_budget"`
	ColorClass      string          `json:"color_class,omitempty"`
	CategoryIDs     []int64         `json:"category_ids,omitempty"`
	CategoryNames   []string        `json:"category_names,omitempty"`
}

func fundToPayload(f core.Fund) fundPayload {
	return fundPayload{
		ID:              f.ID,
		Name:            f.Name,
		Type:            string(f.Type),
		Level:           f.Level,
		Amount:          f.Amount,
		Spent:           f.Spent,
		IncludeInBudget: f.IncludeInBudget,
		ColorClass:      f.ColorClass,
		CategoryIDs:     f.CategoryIDs,
		CategoryNames:   f.CategoryNames,
	}
}

func (p fundPayload) toFund() core.Fund {
	return core.Fund{
		ID:              p.ID,
		Name:            p.Name,
		Type:            core.FundType(p.Type),
		Level:           p.Level,
		Amount:          p.Amount,
		Spent:           p.Spent,
		IncludeInBudget: p.IncludeInBudget,
		ColorClass:      p.ColorClass,
		CategoryIDs:     p.CategoryIDs,
		CategoryNames:   p.CategoryNames,
	}
}

func (s *Server) handleListFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := s.repo.ListFunds(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	payload := make([]fundPayload, 0, len(funds))
	for _, f := range funds {
		payload = append(payload, fundToPayload(f))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateFund(w http.ResponseWriter, r *http.Request) {
	var in fundPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	fund := in.toFund()
	fund.ID = 0
	if err := fund.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.repo.CreateFund(r.Context(), fund)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()
	respondJSON(w, http.StatusCreated, fundToPayload(created))
}

func (s *Server) handleUpdateFund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in fundPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	fund := in.toFund()
	fund.ID = id
	if err := fund.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.repo.UpdateFund(r.Context(), fund); err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()

	updated, err := s.repo.GetFund(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fundToPayload(updated))
}

func (s *Server) handleDeleteFund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteFund(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()
	respondNoContent(w)
}

type periodPayload struct {
	Month        int   `json:"month"`
	BudgetYearID int64 `json:"budget_year_id"`
}

type ledgerViewPayload struct {
	Level     int             `json:"level"`
	Budget    decimal.Decimal `json:"budget"`
	Actual    decimal.Decimal `json:"actual"`
	Remaining decimal.Decimal `json:"remaining"`
	HasActual bool            `json:"has_actual"`
}

type categoryPayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ColorClass string `json:"color_class,omitempty"`
}

type fundOverviewPayload struct {
	Fund       fundPayload       `json:"fund"`
	View       ledgerViewPayload `json:"view"`
	Categories []categoryPayload `json:"categories,omitempty"`
}

type overviewPayload struct {
	Period      periodPayload         `json:"period"`
	Funds       []fundOverviewPayload `json:"funds"`
	TotalBudget decimal.Decimal       `json:"total_budget"`
}

// parsePeriod reads the reporting window from the query, defaulting to the
// current month with no budget-year scope.
func parsePeriod(r *http.Request) core.Period {
	period := core.Period{
		Month:        int(time.Now().Month()),
		BudgetYearID: queryInt(r, "budget_year_id", "budgetYearId"),
	}
	if m := queryInt(r, "month"); m >= 1 && m <= 12 {
		period.Month = int(m)
	}
	return period
}

func overviewToPayload(ov services.Overview) overviewPayload {
	out := overviewPayload{
		Period: periodPayload{
			Month:        ov.Period.Month,
			BudgetYearID: ov.Period.BudgetYearID,
		},
		Funds:       make([]fundOverviewPayload, 0, len(ov.Funds)),
		TotalBudget: ov.TotalBudget,
	}
	for _, fo := range ov.Funds {
		row := fundOverviewPayload{
			Fund: fundToPayload(fo.Fund),
			View: ledgerViewPayload{
				Level:     fo.View.Level,
				Budget:    fo.View.Budget,
				Actual:    fo.View.Actual,
				Remaining: fo.View.Remaining,
				HasActual: fo.View.HasActual,
			},
		}
		for _, c := range fo.Categories {
			row.Categories = append(row.Categories, categoryPayload{
				ID: c.ID, Name: c.Name, ColorClass: c.ColorClass,
			})
		}
		out.Funds = append(out.Funds, row)
	}
	return out
}

// handleFundsOverview serves the reconciled per-fund dashboard rows. The
// response echoes the period it was computed for so a client can discard
// totals that arrive after the displayed period changed.
func (s *Server) handleFundsOverview(w http.ResponseWriter, r *http.Request) {
	period := parsePeriod(r)

	if cached, found := s.overviewCache.Get(period.Key()); found {
		respondJSON(w, http.StatusOK, overviewToPayload(cached))
		return
	}

	overview, err := s.ledger.BuildOverview(r.Context(), period)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Set(period.Key(), overview)
	respondJSON(w, http.StatusOK, overviewToPayload(overview))
}
