package backend

import (
	"fmt"

	"taktziv/internal/config"
)

// Config holds configuration for backup target creation.
type Config struct {
	Type TargetType

	// Google Sheets specific
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string

	// File target specific
	BackupFilePath string
}

// FromAppConfig derives the backup target from the application config. A
// configured spreadsheet wins; otherwise exports go to the local backup
// file, and with neither configured they stay in memory.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	c := Config{
		GoogleSpreadsheetID:   appConfig.GoogleSpreadsheetID,
		GoogleSheetName:       appConfig.GoogleSheetName,
		GoogleCredentialsFile: appConfig.GoogleCredentialsFile,
		GoogleCredentialsJSON: appConfig.GoogleCredentialsJSON,
		BackupFilePath:        appConfig.BackupFilePath,
	}

	switch {
	case appConfig.SheetsEnabled():
		c.Type = SheetsTarget
	case appConfig.BackupFilePath != "":
		c.Type = FileTarget
	default:
		c.Type = MemoryTarget
	}
	return c, nil
}

// Validate validates the backup target configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backup target type: %s", c.Type)
	}

	switch c.Type {
	case SheetsTarget:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("spreadsheet id is required for the sheets target")
		}
		if c.GoogleSheetName == "" {
			return fmt.Errorf("sheet name is required for the sheets target")
		}
		if c.GoogleCredentialsFile == "" && c.GoogleCredentialsJSON == "" {
			return fmt.Errorf("service account credentials are required for the sheets target")
		}

	case FileTarget:
		if c.BackupFilePath == "" {
			return fmt.Errorf("backup file path is required for the file target")
		}

	case MemoryTarget:
		// Nothing to validate.
	}
	return nil
}
