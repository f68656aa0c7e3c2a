package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taktziv/internal/core"
)

type settingsPayload struct {
	TithePercentage float64            `json:"tithe_percentage"`
	DefaultCurrency string             `json:"default_currency"`
	SurplusFund     string             `json:"surplus_fund"`
	IncludedFunds   core.IncludedFunds `json:"included_funds"`
}

func settingsToPayload(s core.Settings) settingsPayload {
	return settingsPayload{
		TithePercentage: s.TithePercentage,
		DefaultCurrency: s.DefaultCurrency,
		SurplusFund:     s.SurplusFund,
		IncludedFunds:   s.IncludedFunds,
	}
}

// handleGetSettings returns the typed settings with defaults applied for
// absent keys.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsToPayload(settings))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in settingsPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	settings := core.Settings{
		TithePercentage: in.TithePercentage,
		DefaultCurrency: in.DefaultCurrency,
		SurplusFund:     in.SurplusFund,
		IncludedFunds:   in.IncludedFunds,
	}
	if err := settings.Validate(); err != nil {
		respondInvalid(w, err.Error())
		return
	}

	updated, err := s.settings.Update(r.Context(), settings)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsToPayload(updated))
}

type settingValueRequest struct {
	Value     string `json:"value"`
	ValueType string `json:"value_type"`
}

// handleUpdateSettingKey writes one setting row. Recognized keys are parsed
// into the typed settings object and validated so a bad value cannot land
// in storage; unrecognized keys are stored as-is for forward compatibility.
func (s *Server) handleUpdateSettingKey(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var in settingValueRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	valueType := core.ValueType(in.ValueType)
	switch valueType {
	case core.ValueNumber, core.ValueString, core.ValueJSON:
	default:
		respondInvalid(w, "value_type must be number, string or json")
		return
	}

	switch key {
	case core.KeyTithePercentage, core.KeyDefaultCurrency, core.KeySurplusFund, core.KeyIncludedFunds:
		current, err := s.settings.Get(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		merged, err := applySettingValue(current, key, in.Value)
		if err != nil {
			respondInvalid(w, err.Error())
			return
		}
		if err := merged.Validate(); err != nil {
			respondInvalid(w, err.Error())
			return
		}
		updated, err := s.settings.Update(r.Context(), merged)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, settingsToPayload(updated))
	default:
		if err := s.repo.UpsertSetting(r.Context(), core.Setting{
			Key: key, Value: in.Value, ValueType: valueType,
		}); err != nil {
			respondError(w, r, err)
			return
		}
		respondNoContent(w)
	}
}

// applySettingValue parses a raw value into its typed settings field.
func applySettingValue(s core.Settings, key, value string) (core.Settings, error) {
	switch key {
	case core.KeyTithePercentage:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return s, err
		}
		s.TithePercentage = v
	case core.KeyDefaultCurrency:
		s.DefaultCurrency = value
	case core.KeySurplusFund:
		s.SurplusFund = value
	case core.KeyIncludedFunds:
		var flags core.IncludedFunds
		if err := json.Unmarshal([]byte(value), &flags); err != nil {
			return s, err
		}
		s.IncludedFunds = flags
	}
	return s, nil
}
