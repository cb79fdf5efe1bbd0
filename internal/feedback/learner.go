// Package feedback teaches the backend new text-to-item aliases. An
// alias is only ever born from a human resolving an ambiguous match;
// automatic matches never learn, however confident.
package feedback

import (
	"context"
	"log/slog"

	"cenar/internal/pricebook"
)

// Learner sends alias-learning events to the backend.
type Learner struct {
	backend pricebook.Service
	logger  *slog.Logger
}

// NewLearner creates a learner.
func NewLearner(backend pricebook.Service, logger *slog.Logger) *Learner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Learner{backend: backend, logger: logger}
}

// Learn notifies the backend of one manually confirmed alias.
// Fire-and-forget: failures are logged, never surfaced, never retried.
func (l *Learner) Learn(ctx context.Context, query string, itemID int64) {
	if query == "" || itemID == 0 {
		return
	}

	if err := l.backend.Learn(ctx, query, itemID); err != nil {
		l.logger.Warn("alias learning failed", "query", query, "item_id", itemID, "error", err)
	}
}
