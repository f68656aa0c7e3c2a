package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"taktziv/internal/core"
	"taktziv/internal/log"
	"taktziv/internal/storage"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// validationErrors are the domain sentinels that map to 422.
var validationErrors = []error{
	core.ErrInvalidAmount,
	core.ErrZeroAmount,
	core.ErrEmptyDescription,
	core.ErrEmptyName,
	core.ErrEmptyTitle,
	core.ErrInvalidLevel,
	core.ErrInvalidFundType,
	core.ErrInvalidMonth,
	core.ErrMissingFund,
	core.ErrNotCashFund,
	core.ErrEditDiscarded,
}

// respondError maps domain errors onto status codes: missing rows are 404,
// rule violations 422, everything else a logged 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
	}
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func respondInvalid(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: msg})
}

// decodeJSON reads a size-capped JSON body into dst. A decode failure has
// already been written to w; the caller just returns.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// pathID parses the {id} path segment.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, keys ...string) int64 {
	for _, key := range keys {
		if v := r.URL.Query().Get(key); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}
