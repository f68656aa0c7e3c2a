package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueType declares how a raw setting value is (de)serialized.
type ValueType string

const (
	ValueNumber ValueType = "number"
	ValueString ValueType = "string"
	ValueJSON   ValueType = "json"
)

// Setting is one stored key/value pair with its declared type.
type Setting struct {
	Key       string
	Value     string
	ValueType ValueType
}

// IncludedFunds holds the advisory per-category inclusion flags. They are
// an independent input to reporting surfaces and are not reconciled with a
// fund's own include_in_budget attribute.
type IncludedFunds struct {
	Daily    bool `json:"daily"`
	Annual   bool `json:"annual"`
	Extended bool `json:"extended"`
	Bonus    bool `json:"bonus"`
}

// Settings is the explicit configuration object carrying every recognized
// key, loaded once and passed by reference to consumers; callers reload it
// after any write.
type Settings struct {
	TithePercentage float64
	DefaultCurrency string
	SurplusFund     string
	IncludedFunds   IncludedFunds
}

const (
	KeyTithePercentage = "tithe_percentage"
	KeyDefaultCurrency = "default_currency"
	KeySurplusFund     = "surplus_fund"
	KeyIncludedFunds   = "included_funds"
)

// DefaultSettings mirrors the defaults applied when a key is absent.
func DefaultSettings() Settings {
	return Settings{
		TithePercentage: 10,
		DefaultCurrency: "ILS",
		SurplusFund:     "surplus",
		IncludedFunds: IncludedFunds{
			Daily:    true,
			Annual:   true,
			Extended: true,
			Bonus:    false,
		},
	}
}

// ValidCurrency reports whether the code is one of the supported display
// currencies.
func ValidCurrency(code string) bool {
	switch code {
	case "ILS", "USD", "EUR":
		return true
	}
	return false
}

// ValidSurplusFund reports whether the surplus destination is recognized.
func ValidSurplusFund(v string) bool {
	switch v {
	case "surplus", "bonus", "savings":
		return true
	}
	return false
}

// Validate checks every recognized field against its allowed range.
func (s Settings) Validate() error {
	if s.TithePercentage < 0 || s.TithePercentage > 100 {
		return fmt.Errorf("tithe percentage %v out of range", s.TithePercentage)
	}
	if !ValidCurrency(s.DefaultCurrency) {
		return fmt.Errorf("unsupported currency %q", s.DefaultCurrency)
	}
	if !ValidSurplusFund(s.SurplusFund) {
		return fmt.Errorf("unsupported surplus fund %q", s.SurplusFund)
	}
	return nil
}

// SettingsFromList builds the typed configuration from stored rows,
// applying defaults for absent keys and ignoring values that fail their
// declared type. A tithe percentage outside 0–100 is treated as absent.
func SettingsFromList(list []Setting) Settings {
	s := DefaultSettings()
	for _, item := range list {
		switch item.Key {
		case KeyTithePercentage:
			if v, err := strconv.ParseFloat(item.Value, 64); err == nil && v >= 0 && v <= 100 {
				s.TithePercentage = v
			}
		case KeyDefaultCurrency:
			if ValidCurrency(item.Value) {
				s.DefaultCurrency = item.Value
			}
		case KeySurplusFund:
			if ValidSurplusFund(item.Value) {
				s.SurplusFund = item.Value
			}
		case KeyIncludedFunds:
			var flags IncludedFunds
			if err := json.Unmarshal([]byte(item.Value), &flags); err == nil {
				s.IncludedFunds = flags
			}
		}
	}
	return s
}
