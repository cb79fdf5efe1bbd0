package annotate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenar/internal/grid"
	"cenar/internal/model"
)

func TestItemIDRoundTrip(t *testing.T) {
	for _, id := range []int64{0, 1, 7, 42, 1532, 987654321} {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			note := MatchNote(model.KindMaterial, model.MatchResult{
				OriginalName: "Kabel CYKY-J 3x1,5",
				MatchScore:   0.91,
				ItemID:       id,
			})

			got, ok := ItemID(note)
			require.True(t, ok)
			assert.Equal(t, id, got)
		})
	}
}

func TestItemIDAbsent(t *testing.T) {
	for _, note := range []string{
		"",
		"jen ručně psaná poznámka",
		"🔗 ID: N/A",
		LaborMissNote,
	} {
		_, ok := ItemID(note)
		assert.False(t, ok, "note %q", note)
	}
}

func TestMatchNoteLayout(t *testing.T) {
	note := MatchNote(model.KindMaterial, model.MatchResult{
		OriginalName: "Zásuvka 230V",
		Source:       "ceník A",
		Date:         "2026-01-10",
		MatchScore:   0.73,
		ItemID:       3,
	})

	assert.Equal(t, "📦 Zásuvka 230V\n📊 Shoda: 73%\n🏢 Zdroj: ceník A\n📅 Datum: 2026-01-10\n🔗 ID: 3", note)
}

func TestMatchNotePlaceholders(t *testing.T) {
	note := MatchNote(model.KindLabor, model.MatchResult{MatchScore: 0.5, ItemID: -1})

	assert.Contains(t, note, "🔧 N/A")
	assert.Contains(t, note, "🏢 Zdroj: N/A")
	assert.Contains(t, note, "📅 Datum: N/A")
	assert.Contains(t, note, "🔗 ID: N/A")
	assert.False(t, HasItemID(note))
}

func TestHighlightBoundary(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		score float64
	}{
		{name: "just below boundary", score: 0.5999, want: FillLowConfidence},
		{name: "exactly at boundary", score: 0.6, want: ""},
		{name: "above boundary", score: 0.95, want: ""},
		{name: "zero", score: 0, want: FillLowConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightFor(tt.score))
		})
	}
}

func TestWriteMatch(t *testing.T) {
	g := grid.NewMemory("Rozpočet")

	err := WriteMatch(g, "Rozpočet", 4, 9, model.KindMaterial, model.MatchResult{
		OriginalName: "Zásuvka 230V",
		Price:        45,
		MatchScore:   0.55,
		ItemID:       3,
	})
	require.NoError(t, err)

	v, _ := g.Value("Rozpočet", 4, 9)
	assert.Equal(t, "45", v)

	fill, _ := g.Fill("Rozpočet", 4, 9)
	assert.Equal(t, FillLowConfidence, fill)

	note, _ := g.Note("Rozpočet", 4, 9)
	id, ok := ItemID(note)
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestWriteCandidateManualFillDistinct(t *testing.T) {
	g := grid.NewMemory("Rozpočet")

	err := WriteCandidate(g, "Rozpočet", 2, 10, model.KindLabor, model.Candidate{
		Item:       "Montáž zásuvky",
		ID:         9,
		PriceLabor: 120,
	})
	require.NoError(t, err)

	fill, _ := g.Fill("Rozpočet", 2, 10)
	assert.Equal(t, FillManual, fill)
	assert.NotEqual(t, FillLowConfidence, fill, "manual and algorithmic highlights must stay distinct")

	note, _ := g.Note("Rozpočet", 2, 10)
	assert.Contains(t, note, "✅ Manuální výběr (100%)")

	v, _ := g.Value("Rozpočet", 2, 10)
	assert.Equal(t, "120", v)
}

func TestWriteLaborMiss(t *testing.T) {
	g := grid.NewMemory("Rozpočet")
	require.NoError(t, g.SetFill("Rozpočet", 2, 10, FillLowConfidence)) // stale fill from a prior pass

	require.NoError(t, WriteLaborMiss(g, "Rozpočet", 2, 10))

	v, _ := g.Value("Rozpočet", 2, 10)
	assert.Equal(t, "0", v)

	fill, _ := g.Fill("Rozpočet", 2, 10)
	assert.Empty(t, fill)

	note, _ := g.Note("Rozpočet", 2, 10)
	assert.Equal(t, LaborMissNote, note)
}

func TestLaborInsertNoteCarriesID(t *testing.T) {
	note := LaborInsertNote(55, "29.08.2026")
	id, ok := ItemID(note)
	require.True(t, ok)
	assert.Equal(t, int64(55), id)
}
