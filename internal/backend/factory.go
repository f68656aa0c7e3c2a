package backend

import (
	"context"
	"fmt"

	"taktziv/internal/adapters"
	"taktziv/internal/config"
	"taktziv/internal/log"
	gsheet "taktziv/internal/sheets/google"
	"taktziv/internal/sheets/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	appConfig *config.Config
	logger    *log.Logger
}

// NewFactory creates a backup target factory. The app config is needed by
// the sheets client, which reads its credentials from it.
func NewFactory(appConfig *config.Config, logger *log.Logger) Factory {
	return &DefaultFactory{
		appConfig: appConfig,
		logger:    logger.WithComponent(log.ComponentSheets),
	}
}

// CreateTarget implements Factory.CreateTarget
func (f *DefaultFactory) CreateTarget(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SheetsTarget:
		return f.createSheetsTarget(ctx)
	case FileTarget:
		return f.createFileTarget(config)
	case MemoryTarget:
		return f.createMemoryTarget()
	default:
		return nil, fmt.Errorf("unsupported backup target type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsTarget(ctx context.Context) (*Result, error) {
	cli, err := gsheet.New(ctx, f.appConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backup target",
		"spreadsheet_id", f.appConfig.GoogleSpreadsheetID,
		"sheet", f.appConfig.GoogleSheetName)

	return &Result{Appender: cli}, nil
}

func (f *DefaultFactory) createFileTarget(config Config) (*Result, error) {
	appender, err := adapters.NewFileAppender(config.BackupFilePath)
	if err != nil {
		return nil, fmt.Errorf("initialize file backup target: %w", err)
	}

	f.logger.Info("Initialized file backup target", "path", config.BackupFilePath)

	return &Result{Appender: appender}, nil
}

func (f *DefaultFactory) createMemoryTarget() (*Result, error) {
	f.logger.Warn("Using in-memory backup target, exported rows are not persisted")
	return &Result{Appender: memory.New()}, nil
}
