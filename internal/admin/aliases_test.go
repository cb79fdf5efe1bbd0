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

func TestAliasBookLoad(t *testing.T) {
	mock := &pricebook.MockService{
		AliasesFunc: func(context.Context) ([]model.Alias, error) {
			return []model.Alias{
				{ID: 1, ItemID: 101, Query: "kabel 3x1.5", ItemName: "Kabel CYKY-J 3x1,5"},
				{ID: 2, ItemID: 102, Query: "zasuvka", ItemName: "Zásuvka 230V"},
			}, nil
		},
	}
	g := grid.NewMemory()
	book := &AliasBook{Backend: mock, Grid: g}

	count, err := book.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	header, err := g.Value(SheetAliases, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "Hledaný výraz (Alias)", header)

	query, err := g.Value(SheetAliases, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "zasuvka", query)
}

func TestAliasBookForgetSelected(t *testing.T) {
	mock := &pricebook.MockService{}
	g := grid.NewMemory(SheetAliases)

	require.NoError(t, g.SetValue(SheetAliases, 1, 1, "ID Aliasu"))
	require.NoError(t, g.SetValue(SheetAliases, 2, 1, "1"))
	require.NoError(t, g.SetValue(SheetAliases, 3, 1, "2"))
	require.NoError(t, g.SetValue(SheetAliases, 4, 1, "3"))

	book := &AliasBook{Backend: mock, Grid: g}
	count, err := book.ForgetSelected(context.Background(), []int{4, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, mock.DeletedAliases, 1)
	assert.ElementsMatch(t, []int64{1, 3}, mock.DeletedAliases[0])

	survivor, err := g.Value(SheetAliases, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "2", survivor)
}

func TestAliasBookForgetNothingSelected(t *testing.T) {
	g := grid.NewMemory(SheetAliases)
	require.NoError(t, g.SetValue(SheetAliases, 1, 1, "ID Aliasu"))

	book := &AliasBook{Backend: &pricebook.MockService{}, Grid: g}
	_, err := book.ForgetSelected(context.Background(), []int{1})
	assert.ErrorIs(t, err, common.ErrNoSelection)
}
