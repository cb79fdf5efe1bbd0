package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenar/internal/annotate"
	"cenar/internal/grid"
	"cenar/internal/model"
	"cenar/internal/storage"
)

func TestResolveFromOwnNote(t *testing.T) {
	g := grid.NewMemory("Rozpočet")
	note := annotate.MatchNote(model.KindMaterial, model.MatchResult{OriginalName: "Kabel", ItemID: 42})
	require.NoError(t, g.SetNote("Rozpočet", 5, 9, note))

	r := &Resolver{}
	id, ok, err := r.ItemID(context.Background(), g, "Rozpočet", 5, 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestResolveFromRowScan(t *testing.T) {
	g := grid.NewMemory("Rozpočet")
	note := annotate.MatchNote(model.KindLabor, model.MatchResult{OriginalName: "Montáž", ItemID: 9})
	require.NoError(t, g.SetNote("Rozpočet", 5, 10, note))
	require.NoError(t, g.SetNote("Rozpočet", 5, 2, "ručně psaná poznámka bez identity"))

	// active cell elsewhere on the same row
	r := &Resolver{}
	id, ok, err := r.ItemID(context.Background(), g, "Rozpočet", 5, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(9), id)
}

func TestRowScanIgnoresColumnsBeyondLimit(t *testing.T) {
	g := grid.NewMemory("Rozpočet")
	note := annotate.MatchNote(model.KindMaterial, model.MatchResult{ItemID: 7})
	require.NoError(t, g.SetNote("Rozpočet", 5, MaxScanColumns+1, note))

	r := &Resolver{}
	_, ok, err := r.ItemID(context.Background(), g, "Rozpočet", 5, 3)
	require.NoError(t, err)
	assert.False(t, ok, "notes beyond the scan limit stay invisible")
}

func TestResolveFromMirrorFirstColumn(t *testing.T) {
	g := grid.NewMemory("ADMIN_DATABASE")
	require.NoError(t, g.SetValue("ADMIN_DATABASE", 3, 1, "123"))
	require.NoError(t, g.SetValue("ADMIN_DATABASE", 3, 2, "Zásuvka 230V"))

	r := &Resolver{MirrorSheet: "ADMIN_DATABASE"}
	id, ok, err := r.ItemID(context.Background(), g, "ADMIN_DATABASE", 3, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(123), id)
}

func TestMirrorNonNumericIDAbsent(t *testing.T) {
	g := grid.NewMemory("ADMIN_DATABASE")
	require.NoError(t, g.SetValue("ADMIN_DATABASE", 1, 1, "ID")) // header row

	r := &Resolver{MirrorSheet: "ADMIN_DATABASE"}
	_, ok, err := r.ItemID(context.Background(), g, "ADMIN_DATABASE", 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveAbsent(t *testing.T) {
	g := grid.NewMemory("Rozpočet")

	r := &Resolver{}
	_, ok, err := r.ItemID(context.Background(), g, "Rozpočet", 2, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSideTableWinsBeforeNoteScan(t *testing.T) {
	s, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))

	ref := storage.CellRef{Document: "rozpocet.xlsx", Sheet: "Rozpočet", Row: 4, Col: 9}
	require.NoError(t, s.SaveCellID(context.Background(), ref, 77))

	g := grid.NewMemory("Rozpočet")
	r := &Resolver{Store: s, Document: "rozpocet.xlsx"}
	id, ok, err := r.ItemID(context.Background(), g, "Rozpočet", 4, 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(77), id)
}
