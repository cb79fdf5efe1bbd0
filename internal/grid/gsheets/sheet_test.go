package gsheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"
)

func TestHexColorRoundTrip(t *testing.T) {
	for _, hex := range []string{"#fff3cd", "#d4edda", "#000000"} {
		color, err := hexToColor(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, colorToHex(color), hex)
	}
}

func TestHexToColorInvalid(t *testing.T) {
	for _, hex := range []string{"", "#fff", "nope42", "#gggggg"} {
		_, err := hexToColor(hex)
		assert.Error(t, err, hex)
	}
}

func TestColorToHexWhiteMeansCleared(t *testing.T) {
	assert.Empty(t, colorToHex(&sheets.Color{Red: 1, Green: 1, Blue: 1}))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "service account",
			config:  Config{ServiceAccountPath: "/key.json", SpreadsheetID: "abc"},
			wantErr: false,
		},
		{
			name: "oauth",
			config: Config{
				ClientID: "id", ClientSecret: "secret", RefreshToken: "tok",
				SpreadsheetID: "abc",
			},
			wantErr: false,
		},
		{
			name:    "no auth",
			config:  Config{SpreadsheetID: "abc"},
			wantErr: true,
		},
		{
			name: "both auth methods",
			config: Config{
				ClientID: "id", ClientSecret: "secret", RefreshToken: "tok",
				ServiceAccountPath: "/key.json", SpreadsheetID: "abc",
			},
			wantErr: true,
		},
		{
			name:    "missing spreadsheet id",
			config:  Config{ServiceAccountPath: "/key.json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
