// Package gsheets implements the grid abstraction on top of the Google
// Sheets API.
package gsheets

import (
	"fmt"
	"os"
)

// Config holds authentication and target settings for the Sheets grid.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
}

// LoadFromEnv loads the configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	c.ClientID = os.Getenv("CENAR_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("CENAR_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("CENAR_SHEETS_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("CENAR_SHEETS_SERVICE_ACCOUNT_PATH")

	if c.SpreadsheetID == "" {
		c.SpreadsheetID = os.Getenv("CENAR_SHEETS_SPREADSHEET_ID")
	}

	return c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured: provide either a service account path or OAuth2 credentials")
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet ID is required")
	}
	return nil
}
