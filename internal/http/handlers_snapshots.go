package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"taktziv/internal/core"
	"taktziv/internal/services"
)

type snapshotRequest struct {
	Date        string                     `json:"date"`
	Assets      map[string]core.AssetValue `json:"assets"`
	Liabilities map[string]core.AssetValue `json:"liabilities"`
	Note        string                     `json:"note,omitempty"`
}

type snapshotTotalsPayload struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"net_worth"`
}

type snapshotDeltaPayload struct {
	AssetsChange      decimal.Decimal `json:"assets_change"`
	LiabilitiesChange decimal.Decimal `json:"liabilities_change"`
	NetWorthChange    decimal.Decimal `json:"net_worth_change"`
}

type snapshotPayload struct {
	ID          int64                      `json:"id"`
	Date        string                     `json:"date"`
	Assets      map[string]core.AssetValue `json:"assets"`
	Liabilities map[string]core.AssetValue `json:"liabilities"`
	Note        string                     `json:"note,omitempty"`
	Totals      snapshotTotalsPayload      `json:"totals"`
	// Delta fields compare against the next-older snapshot; the oldest
	// entry carries no delta.
	Delta         *snapshotDeltaPayload `json:"delta,omitempty"`
	ChangePercent string                `json:"change_percent,omitempty"`
	HasPercent    bool                  `json:"has_percent"`
	Improved      bool                  `json:"improved"`
}

func snapshotViewToPayload(v services.SnapshotView) snapshotPayload {
	p := snapshotPayload{
		ID:          v.Snapshot.ID,
		Date:        v.Snapshot.Date.ISO(),
		Assets:      v.Snapshot.Assets,
		Liabilities: v.Snapshot.Liabilities,
		Note:        v.Snapshot.Note,
		Totals: snapshotTotalsPayload{
			Assets:      v.Totals.Assets,
			Liabilities: v.Totals.Liabilities,
			NetWorth:    v.Totals.NetWorth,
		},
		ChangePercent: v.ChangePercent,
		HasPercent:    v.HasPercent,
		Improved:      v.Improved,
	}
	if v.Delta != nil {
		p.Delta = &snapshotDeltaPayload{
			AssetsChange:      v.Delta.AssetsChange,
			LiabilitiesChange: v.Delta.LiabilitiesChange,
			NetWorthChange:    v.Delta.NetWorthChange,
		}
	}
	return p
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	views, err := s.snapshots.ListWithDeltas(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	payload := make([]snapshotPayload, 0, len(views))
	for _, v := range views {
		payload = append(payload, snapshotViewToPayload(v))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var in snapshotRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	date, err := core.ParseDate(in.Date)
	if err != nil {
		respondInvalid(w, "invalid date, want YYYY-MM-DD")
		return
	}

	created, err := s.snapshots.Create(r.Context(), core.Snapshot{
		Date:        date,
		Assets:      in.Assets,
		Liabilities: in.Liabilities,
		Note:        in.Note,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	view := services.SnapshotView{Snapshot: created, Totals: core.Totals(created)}
	respondJSON(w, http.StatusCreated, snapshotViewToPayload(view))
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.snapshots.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondNoContent(w)
}
