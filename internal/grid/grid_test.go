package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		letter string
		want   int
	}{
		{"A", 1},
		{"Z", 26},
		{"AA", 27},
		{"AZ", 52},
		{"C", 3},
		{"J", 10},
		{"c", 3}, // lowercase normalized
	}

	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			got, err := ColumnIndex(tt.letter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnIndexInvalid(t *testing.T) {
	for _, letter := range []string{"", "1", "A1", "Č"} {
		_, err := ColumnIndex(letter)
		assert.Error(t, err, "letter %q", letter)
	}
}

func TestColumnLetterRoundTrip(t *testing.T) {
	for col := 1; col <= 200; col++ {
		letter := ColumnLetter(col)
		got, err := ColumnIndex(letter)
		require.NoError(t, err)
		assert.Equal(t, col, got, "column %d rendered as %q", col, letter)
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection("Rozpočet", "A2:J40")
	require.NoError(t, err)
	assert.Equal(t, Selection{Sheet: "Rozpočet", StartRow: 2, EndRow: 40, StartCol: 1, EndCol: 10}, sel)
	assert.Equal(t, 39, sel.Rows())

	single, err := ParseSelection("List1", "C7")
	require.NoError(t, err)
	assert.Equal(t, Selection{Sheet: "List1", StartRow: 7, EndRow: 7, StartCol: 3, EndCol: 3}, single)
}

func TestParseSelectionInvalid(t *testing.T) {
	for _, ref := range []string{"", "A", "2", "J40:A2", "A0"} {
		_, err := ParseSelection("List1", ref)
		assert.Error(t, err, "ref %q", ref)
	}
}

func TestScanDescriptions(t *testing.T) {
	g := NewMemory("Rozpočet")
	require.NoError(t, g.SetValue("Rozpočet", 2, 3, "Kabel CYKY 3x1.5"))
	require.NoError(t, g.SetValue("Rozpočet", 3, 3, ""))
	require.NoError(t, g.SetValue("Rozpočet", 4, 3, "Zásuvka 230V"))
	require.NoError(t, g.SetValue("Rozpočet", 5, 3, "  ab ")) // too short after trim

	sel := Selection{Sheet: "Rozpočet", StartRow: 2, EndRow: 5, StartCol: 1, EndCol: 10}
	rows, err := ScanDescriptions(g, sel, 3)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, ScannedRow{Row: 2, Description: "Kabel CYKY 3x1.5"}, rows[0])
	assert.Equal(t, ScannedRow{Row: 4, Description: "Zásuvka 230V"}, rows[1])
}

func TestScanDescriptionsAbsoluteRows(t *testing.T) {
	g := NewMemory("List1")
	require.NoError(t, g.SetValue("List1", 10, 2, "Vypínač řazení 1"))

	sel := Selection{Sheet: "List1", StartRow: 10, EndRow: 10, StartCol: 2, EndCol: 2}
	rows, err := ScanDescriptions(g, sel, 2)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].Row, "row numbers must be absolute, not selection-relative")
}

func TestMemoryRowOps(t *testing.T) {
	g := NewMemory("List1")
	require.NoError(t, g.SetValue("List1", 1, 1, "a"))
	require.NoError(t, g.SetValue("List1", 2, 1, "b"))
	require.NoError(t, g.SetValue("List1", 3, 1, "c"))

	require.NoError(t, g.InsertRowAfter("List1", 1))
	v, err := g.Value("List1", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	require.NoError(t, g.DeleteRow("List1", 2))
	v, err = g.Value("List1", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	last, err := g.LastRow("List1")
	require.NoError(t, err)
	assert.Equal(t, 3, last)
}

func TestMemoryUnknownSheet(t *testing.T) {
	g := NewMemory()
	_, err := g.Value("missing", 1, 1)
	assert.Error(t, err)
}
