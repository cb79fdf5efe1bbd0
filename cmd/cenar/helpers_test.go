package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenar/internal/common"
)

func TestParseRowList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "simple", input: "2,5,7", want: []int{2, 5, 7}},
		{name: "spaces", input: " 2 , 5 ", want: []int{2, 5}},
		{name: "trailing comma", input: "3,", want: []int{3}},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "2,x", wantErr: true},
		{name: "zero row", input: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRowList(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSettingsOverrides(t *testing.T) {
	cmd := priceCmd()
	require.NoError(t, cmd.Flags().Set("threshold", "0.7"))
	require.NoError(t, cmd.Flags().Set("material-column", "K"))

	s, err := resolveSettings(cmd)
	require.NoError(t, err)
	assert.Equal(t, 0.7, s.Threshold)
	assert.Equal(t, "K", s.MaterialColumn)
	// untouched flags keep defaults
	assert.Equal(t, "C", s.DescColumn)
	assert.Equal(t, "J", s.LaborColumn)
}

func TestResolveSettingsRejectsBadValues(t *testing.T) {
	cmd := priceCmd()
	require.NoError(t, cmd.Flags().Set("threshold", "1.5"))

	_, err := resolveSettings(cmd)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	cmd = priceCmd()
	require.NoError(t, cmd.Flags().Set("desc-column", "č"))

	_, err = resolveSettings(cmd)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
