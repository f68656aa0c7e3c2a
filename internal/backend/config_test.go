package backend

import (
	"testing"

	"taktziv/internal/config"
)

func TestFromAppConfigTargetSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want TargetType
	}{
		{
			name: "spreadsheet configured wins",
			cfg: config.Config{
				GoogleSpreadsheetID: "sheet-id",
				GoogleSheetName:     "Snapshots",
				BackupFilePath:      "./data/backups.csv",
			},
			want: SheetsTarget,
		},
		{
			name: "file fallback without spreadsheet",
			cfg:  config.Config{BackupFilePath: "./data/backups.csv"},
			want: FileTarget,
		},
		{
			name: "memory when nothing configured",
			cfg:  config.Config{},
			want: MemoryTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAppConfig(&tt.cfg)
			if err != nil {
				t.Fatalf("FromAppConfig() error = %v", err)
			}
			if got.Type != tt.want {
				t.Errorf("FromAppConfig() type = %s, want %s", got.Type, tt.want)
			}
		})
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig(nil) expected error")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid sheets target",
			cfg: Config{
				Type:                  SheetsTarget,
				GoogleSpreadsheetID:   "sheet-id",
				GoogleSheetName:       "Snapshots",
				GoogleCredentialsJSON: "{}",
			},
		},
		{
			name:    "sheets target without credentials",
			cfg:     Config{Type: SheetsTarget, GoogleSpreadsheetID: "sheet-id", GoogleSheetName: "Snapshots"},
			wantErr: true,
		},
		{
			name: "valid file target",
			cfg:  Config{Type: FileTarget, BackupFilePath: "./backups.csv"},
		},
		{
			name:    "file target without path",
			cfg:     Config{Type: FileTarget},
			wantErr: true,
		},
		{
			name: "memory target needs nothing",
			cfg:  Config{Type: MemoryTarget},
		},
		{
			name:    "unknown target type",
			cfg:     Config{Type: TargetType("tape")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
