package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenar/internal/grid"
	"cenar/internal/pricebook"
)

func TestResetHappyPath(t *testing.T) {
	mock := &pricebook.MockService{}
	g := grid.NewMemory(SheetDatabase)
	require.NoError(t, g.SetValue(SheetDatabase, 2, 2, "Jistič B16"))

	r := &Reset{Backend: mock, Grid: g}
	assert.Equal(t, ResetWarned, r.Acknowledge(true))

	// trimmed and case-insensitive
	state, err := r.Confirm(context.Background(), "  smazat ")
	require.NoError(t, err)
	assert.Equal(t, ResetExecuted, state)
	assert.Equal(t, 1, mock.ResetCount)

	// stale mirror cleared
	v, err := g.Value(SheetDatabase, 2, 2)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestResetWrongPhraseAborts(t *testing.T) {
	mock := &pricebook.MockService{}
	r := &Reset{Backend: mock}

	r.Acknowledge(true)
	state, err := r.Confirm(context.Background(), "ano")
	require.NoError(t, err)
	assert.Equal(t, ResetAborted, state)
	assert.Zero(t, mock.ResetCount)
}

func TestResetDeclineWarning(t *testing.T) {
	mock := &pricebook.MockService{}
	r := &Reset{Backend: mock}

	assert.Equal(t, ResetAborted, r.Acknowledge(false))

	// a later confirm must be a no-op
	state, err := r.Confirm(context.Background(), ConfirmPhrase)
	require.NoError(t, err)
	assert.Equal(t, ResetAborted, state)
	assert.Zero(t, mock.ResetCount)
}

func TestResetConfirmWithoutWarning(t *testing.T) {
	mock := &pricebook.MockService{}
	r := &Reset{Backend: mock}

	state, err := r.Confirm(context.Background(), ConfirmPhrase)
	require.NoError(t, err)
	assert.Equal(t, ResetIdle, state)
	assert.Zero(t, mock.ResetCount)
}

func TestResetBackendFailure(t *testing.T) {
	mock := &pricebook.MockService{
		ResetDatabaseFunc: func(context.Context) error { return errors.New("boom") },
	}
	r := &Reset{Backend: mock}

	r.Acknowledge(true)
	state, err := r.Confirm(context.Background(), ConfirmPhrase)
	require.Error(t, err)
	assert.Equal(t, ResetAborted, state)
}
