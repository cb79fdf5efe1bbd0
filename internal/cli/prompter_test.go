package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenar/internal/common"
	"cenar/internal/model"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "czech yes", input: "Ano\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty declines", input: "\n", want: false},
		{name: "garbage declines", input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Pokračovat?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPhrase(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  SMAZAT  \n"), &out)

	phrase, err := p.ReadPhrase(context.Background(), "Napište SMAZAT")
	require.NoError(t, err)
	assert.Equal(t, "SMAZAT", phrase)
}

func TestPickCandidate(t *testing.T) {
	candidates := []model.Candidate{
		{Item: "Vypínač č.1", ID: 1, PriceMaterial: 55},
		{Item: "Vypínač č.6", ID: 2, PriceMaterial: 72},
	}

	t.Run("valid pick", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("2\n"), &out)

		chosen, err := p.PickCandidate(context.Background(), "Vypínač", model.KindMaterial, candidates)
		require.NoError(t, err)
		assert.Equal(t, int64(2), chosen.ID)
		assert.Contains(t, out.String(), "Vypínač č.6")
	})

	t.Run("retry after invalid input", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("9\nx\n1\n"), &out)

		chosen, err := p.PickCandidate(context.Background(), "Vypínač", model.KindMaterial, candidates)
		require.NoError(t, err)
		assert.Equal(t, int64(1), chosen.ID)
	})

	t.Run("zero cancels", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("0\n"), &out)

		_, err := p.PickCandidate(context.Background(), "Vypínač", model.KindMaterial, candidates)
		assert.ErrorIs(t, err, common.ErrNoSelection)
	})

	t.Run("no candidates", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("\n"), &out)

		_, err := p.PickCandidate(context.Background(), "Vypínač", model.KindMaterial, nil)
		assert.ErrorIs(t, err, common.ErrNoSelection)
	})
}

func TestReadLineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewNonBlockingReader(blockingReader{})
	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

// blockingReader never returns, standing in for a user who walked away.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
