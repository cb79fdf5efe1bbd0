package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCellIDRoundTrip(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	ref := CellRef{Document: "rozpocet.xlsx", Sheet: "Rozpočet", Row: 4, Col: 9}
	require.NoError(t, s.SaveCellID(ctx, ref, 42))

	id, ok, err := s.CellID(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	// replace wins
	require.NoError(t, s.SaveCellID(ctx, ref, 7))
	id, ok, err = s.CellID(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestCellIDAbsent(t *testing.T) {
	s := setupTestStorage(t)

	_, ok, err := s.CellID(context.Background(), CellRef{Document: "x", Sheet: "y", Row: 1, Col: 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRowIDLowestColumnFirst(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCellID(ctx, CellRef{Document: "d", Sheet: "s", Row: 3, Col: 10}, 100))
	require.NoError(t, s.SaveCellID(ctx, CellRef{Document: "d", Sheet: "s", Row: 3, Col: 9}, 99))

	id, ok, err := s.RowID(ctx, "d", "s", 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(99), id)
}

func TestForgetSheet(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	ref := CellRef{Document: "d", Sheet: "ADMIN_DATABASE", Row: 2, Col: 1}
	require.NoError(t, s.SaveCellID(ctx, ref, 5))
	require.NoError(t, s.ForgetSheet(ctx, "d", "ADMIN_DATABASE"))

	_, ok, err := s.CellID(ctx, ref)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOperationLog(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.RecordOperation(ctx, "price", 12, 9))
	require.NoError(t, s.RecordOperation(ctx, "admin_sync", 40, 40))

	ops, err := s.RecentOperations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "admin_sync", ops[0].Kind, "newest first")
	assert.Equal(t, 12, ops[1].Rows)
}

func TestMigrateIdempotent(t *testing.T) {
	s := setupTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
}
