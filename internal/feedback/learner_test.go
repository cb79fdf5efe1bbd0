package feedback

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"cenar/internal/pricebook"
)

func TestLearnForwardsAlias(t *testing.T) {
	backend := pricebook.NewMockService()
	learner := NewLearner(backend, nil)

	learner.Learn(context.Background(), "kabel cyky 3x1.5", 42)

	assert.Equal(t, []string{"kabel cyky 3x1.5"}, backend.LearnedQueries)
	assert.Equal(t, []int64{42}, backend.LearnedItemIDs)
}

func TestLearnSwallowsBackendFailure(t *testing.T) {
	backend := pricebook.NewMockService()
	backend.LearnFunc = func(context.Context, string, int64) error {
		return fmt.Errorf("backend unreachable")
	}
	learner := NewLearner(backend, nil)

	// must not panic or surface the failure
	learner.Learn(context.Background(), "zásuvka", 7)
	assert.Len(t, backend.LearnedQueries, 1)
}

func TestLearnSkipsIncompleteEvents(t *testing.T) {
	backend := pricebook.NewMockService()
	learner := NewLearner(backend, nil)

	learner.Learn(context.Background(), "", 42)
	learner.Learn(context.Background(), "kabel", 0)

	assert.Empty(t, backend.LearnedQueries, "no query or no item id means nothing to teach")
}
