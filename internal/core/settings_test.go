package core

import "testing"

func TestSettingsFromListDefaults(t *testing.T) {
	s := SettingsFromList(nil)
	if s.TithePercentage != 10 || s.DefaultCurrency != "ILS" || s.SurplusFund != "surplus" {
		t.Fatalf("defaults = %+v", s)
	}
	want := IncludedFunds{Daily: true, Annual: true, Extended: true, Bonus: false}
	if s.IncludedFunds != want {
		t.Fatalf("included funds = %+v", s.IncludedFunds)
	}
}

func TestSettingsFromList(t *testing.T) {
	s := SettingsFromList([]Setting{
		{Key: KeyTithePercentage, Value: "12.5", ValueType: ValueNumber},
		{Key: KeyDefaultCurrency, Value: "USD", ValueType: ValueString},
		{Key: KeySurplusFund, Value: "bonus", ValueType: ValueString},
		{Key: KeyIncludedFunds, Value: `{"daily":false,"annual":true,"extended":false,"bonus":true}`, ValueType: ValueJSON},
	})
	if s.TithePercentage != 12.5 {
		t.Fatalf("tithe = %v", s.TithePercentage)
	}
	if s.DefaultCurrency != "USD" || s.SurplusFund != "bonus" {
		t.Fatalf("got %+v", s)
	}
	want := IncludedFunds{Daily: false, Annual: true, Extended: false, Bonus: true}
	if s.IncludedFunds != want {
		t.Fatalf("included funds = %+v", s.IncludedFunds)
	}
}

func TestSettingsFromListIgnoresInvalid(t *testing.T) {
	s := SettingsFromList([]Setting{
		{Key: KeyTithePercentage, Value: "150", ValueType: ValueNumber},
		{Key: KeyTithePercentage, Value: "not a number", ValueType: ValueNumber},
		{Key: KeyDefaultCurrency, Value: "GBP", ValueType: ValueString},
		{Key: KeySurplusFund, Value: "void", ValueType: ValueString},
		{Key: KeyIncludedFunds, Value: "{broken", ValueType: ValueJSON},
		{Key: "unknown_key", Value: "whatever", ValueType: ValueString},
	})
	d := DefaultSettings()
	if s != d {
		t.Fatalf("invalid values must fall back to defaults: got %+v", s)
	}
}
