package config

import (
	"os"

	"github.com/spf13/viper"

	"cenar/internal/grid/gsheets"
	"cenar/internal/model"
)

// DefaultBackendURL is where the pricing backend listens when nothing
// else is configured.
const DefaultBackendURL = "http://localhost:8000"

// BackendURL resolves the pricing backend base URL.
func BackendURL() string {
	if v := viper.GetString("backend.url"); v != "" {
		return v
	}
	if v := os.Getenv("CENAR_BACKEND_URL"); v != "" {
		return v
	}
	return DefaultBackendURL
}

// LoadSettings resolves the pricing settings once, at an operation's
// entry point. Precedence: viper (config file or CENAR_ env vars), then
// the built-in defaults. Flag overrides are applied by the caller on
// top of the returned value.
func LoadSettings() model.Settings {
	s := model.DefaultSettings()

	if v := viper.GetString("pricing.desc_column"); v != "" {
		s.DescColumn = v
	}
	if v := viper.GetString("pricing.material_column"); v != "" {
		s.MaterialColumn = v
	}
	if v := viper.GetString("pricing.labor_column"); v != "" {
		s.LaborColumn = v
	}
	if viper.IsSet("pricing.threshold") {
		s.Threshold = viper.GetFloat64("pricing.threshold")
	}

	return s
}

// LoadSheetsConfig loads Google Sheets configuration. Precedence:
// viper configuration, then CENAR_SHEETS_* environment variables.
func LoadSheetsConfig(spreadsheetID string) (*gsheets.Config, error) {
	cfg := &gsheets.Config{SpreadsheetID: spreadsheetID}

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		cfg.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		cfg.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" && cfg.SpreadsheetID == "" {
		cfg.SpreadsheetID = v
	}

	if cfg.ServiceAccountPath == "" && cfg.ClientID == "" {
		if err := cfg.LoadFromEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if cfg.ServiceAccountPath != "" {
		cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IndexPath resolves the local cell-index database location.
func IndexPath() string {
	p := viper.GetString("index.path")
	if p == "" {
		p = "$HOME/.local/share/cenar/cenar.db"
	}
	return ExpandPath(p)
}
