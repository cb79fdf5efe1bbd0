package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenar/internal/common"
	"cenar/internal/grid"
	"cenar/internal/model"
	"cenar/internal/pricebook"
)

func ptr(v int64) *int64 { return &v }

func TestMirrorLoad(t *testing.T) {
	mock := &pricebook.MockService{
		AdminItemsFunc: func(context.Context) ([]model.CatalogItem, error) {
			return []model.CatalogItem{
				{ID: ptr(1), Name: "Kabel CYKY-J 3x1,5", Unit: "m", Source: "ceník", Date: "2026-08-01", PriceMaterial: 18.5, PriceLabor: 12},
				{ID: ptr(2), Name: "Zásuvka 230V", Unit: "ks", PriceMaterial: 85, PriceLabor: 120},
			}, nil
		},
	}
	g := grid.NewMemory()
	mirror := &Mirror{Backend: mock, Grid: g}

	count, err := mirror.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	header, err := g.Value(SheetDatabase, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Název", header)

	name, err := g.Value(SheetDatabase, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "Kabel CYKY-J 3x1,5", name)

	price, err := g.Value(SheetDatabase, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "85", price)
}

func TestMirrorLoadReplacesEdits(t *testing.T) {
	mock := &pricebook.MockService{
		AdminItemsFunc: func(context.Context) ([]model.CatalogItem, error) {
			return []model.CatalogItem{{ID: ptr(1), Name: "Jistič B16", Unit: "ks"}}, nil
		},
	}
	g := grid.NewMemory(SheetDatabase)
	require.NoError(t, g.SetValue(SheetDatabase, 5, 2, "lokální nesynchronizovaná položka"))

	mirror := &Mirror{Backend: mock, Grid: g}
	_, err := mirror.Load(context.Background())
	require.NoError(t, err)

	stale, err := g.Value(SheetDatabase, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestMirrorSync(t *testing.T) {
	mock := &pricebook.MockService{}
	g := grid.NewMemory(SheetDatabase)

	// header
	require.NoError(t, g.SetValue(SheetDatabase, 1, 1, "ID"))
	// existing item with messy price formatting
	require.NoError(t, g.SetValue(SheetDatabase, 2, 1, "7"))
	require.NoError(t, g.SetValue(SheetDatabase, 2, 2, "Jistič B16"))
	require.NoError(t, g.SetValue(SheetDatabase, 2, 3, "129,50"))
	require.NoError(t, g.SetValue(SheetDatabase, 2, 5, "ks"))
	// new row: no id, no unit, junk price
	require.NoError(t, g.SetValue(SheetDatabase, 3, 2, "Nový vypínač"))
	require.NoError(t, g.SetValue(SheetDatabase, 3, 3, "abc"))
	// nameless row must be dropped
	require.NoError(t, g.SetValue(SheetDatabase, 4, 3, "999"))

	mirror := &Mirror{Backend: mock, Grid: g}
	count, err := mirror.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, mock.SyncedBatches, 1)
	batch := mock.SyncedBatches[0]
	require.Len(t, batch, 2)

	require.NotNil(t, batch[0].ID)
	assert.Equal(t, int64(7), *batch[0].ID)
	assert.Equal(t, 129.5, batch[0].PriceMaterial)

	assert.Nil(t, batch[1].ID)
	assert.Equal(t, "ks", batch[1].Unit)
	assert.Zero(t, batch[1].PriceMaterial)
}

func TestMirrorSyncWithoutSheet(t *testing.T) {
	mirror := &Mirror{Backend: &pricebook.MockService{}, Grid: grid.NewMemory()}

	_, err := mirror.Sync(context.Background())
	assert.ErrorIs(t, err, common.ErrMirrorNotLoaded)
}

func TestMirrorDeleteSelected(t *testing.T) {
	mock := &pricebook.MockService{}
	g := grid.NewMemory(SheetDatabase)

	require.NoError(t, g.SetValue(SheetDatabase, 1, 1, "ID"))
	for i, id := range []string{"10", "11", "", "13"} {
		require.NoError(t, g.SetValue(SheetDatabase, i+2, 1, id))
		require.NoError(t, g.SetValue(SheetDatabase, i+2, 2, "Položka"))
	}

	mirror := &Mirror{Backend: mock, Grid: g}
	// rows 2, 4 (local-only) and 5; header row 1 must be ignored
	count, err := mirror.DeleteSelected(context.Background(), []int{5, 1, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, mock.DeletedItemIDs, 1)
	assert.ElementsMatch(t, []int64{10, 13}, mock.DeletedItemIDs[0])

	// only the row with id 11 survives, shifted up to row 2
	survivor, err := g.Value(SheetDatabase, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "11", survivor)

	last, err := g.LastRow(SheetDatabase)
	require.NoError(t, err)
	assert.Equal(t, 2, last)
}
