package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"taktziv/internal/core"
	"taktziv/internal/storage"
)

// SettingsService loads and updates the explicit configuration object.
// Consumers reload after any write; nothing is cached here.
type SettingsService struct {
	storage *storage.Repository
}

func NewSettingsService(storage *storage.Repository) *SettingsService {
	return &SettingsService{storage: storage}
}

// Get builds the typed settings from stored rows, applying defaults for
// absent keys and ignoring values that fail their declared type.
func (s *SettingsService) Get(ctx context.Context) (core.Settings, error) {
	list, err := s.storage.ListSettings(ctx)
	if err != nil {
		return core.Settings{}, err
	}
	return core.SettingsFromList(list), nil
}

// Update validates and persists every recognized field, then returns the
// freshly reloaded settings.
func (s *SettingsService) Update(ctx context.Context, settings core.Settings) (core.Settings, error) {
	if err := settings.Validate(); err != nil {
		return core.Settings{}, err
	}

	includedFunds, err := json.Marshal(settings.IncludedFunds)
	if err != nil {
		return core.Settings{}, fmt.Errorf("encode included funds: %w", err)
	}

	rows := []core.Setting{
		{Key: core.KeyTithePercentage, Value: strconv.FormatFloat(settings.TithePercentage, 'f', -1, 64), ValueType: core.ValueNumber},
		{Key: core.KeyDefaultCurrency, Value: settings.DefaultCurrency, ValueType: core.ValueString},
		{Key: core.KeySurplusFund, Value: settings.SurplusFund, ValueType: core.ValueString},
		{Key: core.KeyIncludedFunds, Value: string(includedFunds), ValueType: core.ValueJSON},
	}
	for _, row := range rows {
		if err := s.storage.UpsertSetting(ctx, row); err != nil {
			return core.Settings{}, err
		}
	}

	return s.Get(ctx)
}
