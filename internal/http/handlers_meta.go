package http

import (
	"net/http"

	"taktziv/internal/core"
)

type budgetYearPayload struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
}

func budgetYearToPayload(b core.BudgetYear) budgetYearPayload {
	return budgetYearPayload{
		ID:        b.ID,
		Name:      b.Name,
		StartDate: b.StartDate.ISO(),
		EndDate:   b.EndDate.ISO(),
		IsActive:  b.IsActive,
	}
}

func (s *Server) handleListBudgetYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.repo.ListBudgetYears(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	payload := make([]budgetYearPayload, 0, len(years))
	for _, b := range years {
		payload = append(payload, budgetYearToPayload(b))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateBudgetYear(w http.ResponseWriter, r *http.Request) {
	var in budgetYearPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	start, err := core.ParseDate(in.StartDate)
	if err != nil {
		respondInvalid(w, "invalid start_date, want YYYY-MM-DD")
		return
	}
	end, err := core.ParseDate(in.EndDate)
	if err != nil {
		respondInvalid(w, "invalid end_date, want YYYY-MM-DD")
		return
	}

	year := core.BudgetYear{Name: in.Name, StartDate: start, EndDate: end}
	if err := year.Validate(); err != nil {
		respondInvalid(w, err.Error())
		return
	}

	created, err := s.repo.CreateBudgetYear(r.Context(), year)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, budgetYearToPayload(created))
}

// handleActivateBudgetYear makes the target the single active year.
func (s *Server) handleActivateBudgetYear(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.ActivateBudgetYear(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()
	respondNoContent(w)
}

func (s *Server) handleDeleteBudgetYear(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteBudgetYear(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.overviewCache.Purge()
	respondNoContent(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.repo.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	payload := make([]categoryPayload, 0, len(categories))
	for _, c := range categories {
		payload = append(payload, categoryPayload{ID: c.ID, Name: c.Name, ColorClass: c.ColorClass})
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	category := core.Category{Name: in.Name, ColorClass: in.ColorClass}
	if err := category.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.repo.CreateCategory(r.Context(), category)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, categoryPayload{
		ID: created.ID, Name: created.Name, ColorClass: created.ColorClass,
	})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondNoContent(w)
}

type assetTypePayload struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	IsDefault bool   `json:"is_default"`
}

func assetTypeToPayload(a core.AssetType) assetTypePayload {
	return assetTypePayload{ID: a.ID, Name: a.Name, Kind: string(a.Kind), IsDefault: a.IsDefault}
}

func (s *Server) handleListAssetTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.repo.ListAssetTypes(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	payload := make([]assetTypePayload, 0, len(types))
	for _, a := range types {
		payload = append(payload, assetTypeToPayload(a))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateAssetType(w http.ResponseWriter, r *http.Request) {
	var in assetTypePayload
	if !decodeJSON(w, r, &in) {
		return
	}
	assetType := core.AssetType{Name: in.Name, Kind: core.AssetKind(in.Kind), IsDefault: in.IsDefault}
	if err := assetType.Validate(); err != nil {
		respondInvalid(w, err.Error())
		return
	}

	created, err := s.repo.CreateAssetType(r.Context(), assetType)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, assetTypeToPayload(created))
}

func (s *Server) handleUpdateAssetType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in assetTypePayload
	if !decodeJSON(w, r, &in) {
		return
	}
	assetType := core.AssetType{ID: id, Name: in.Name, Kind: core.AssetKind(in.Kind), IsDefault: in.IsDefault}
	if err := assetType.Validate(); err != nil {
		respondInvalid(w, err.Error())
		return
	}

	if err := s.repo.UpdateAssetType(r.Context(), assetType); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, assetTypeToPayload(assetType))
}

func (s *Server) handleDeleteAssetType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteAssetType(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondNoContent(w)
}
