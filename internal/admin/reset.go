package admin

import (
	"context"
	"log/slog"
	"strings"

	"cenar/internal/grid"
	"cenar/internal/pricebook"
)

// ConfirmPhrase is the word a user must type to authorize a database
// reset. Comparison is case-insensitive after trimming.
const ConfirmPhrase = "SMAZAT"

// ResetState tracks progress through the two-stage reset confirmation.
type ResetState int

const (
	ResetIdle ResetState = iota
	ResetWarned
	ResetExecuted
	ResetAborted
)

// Reset walks the destructive reset through its required stages: an
// explicit warning acknowledgment, then a typed confirmation phrase.
// The backend is contacted only after both gates pass.
type Reset struct {
	Backend pricebook.Service
	Grid    grid.Grid
	Logger  *slog.Logger

	state ResetState
}

func (r *Reset) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// State returns the current stage.
func (r *Reset) State() ResetState {
	return r.state
}

// Acknowledge records the user accepting the first warning. Declining
// aborts the flow.
func (r *Reset) Acknowledge(accepted bool) ResetState {
	if r.state != ResetIdle {
		return r.state
	}
	if !accepted {
		r.state = ResetAborted
		return r.state
	}
	r.state = ResetWarned
	return r.state
}

// Confirm checks the typed phrase and, on match, performs the reset.
// Any other input aborts without touching the backend.
func (r *Reset) Confirm(ctx context.Context, phrase string) (ResetState, error) {
	if r.state != ResetWarned {
		return r.state, nil
	}

	if !strings.EqualFold(strings.TrimSpace(phrase), ConfirmPhrase) {
		r.state = ResetAborted
		r.logger().Info("database reset aborted", "typed", phrase)
		return r.state, nil
	}

	if err := r.Backend.ResetDatabase(ctx); err != nil {
		r.state = ResetAborted
		return r.state, err
	}
	r.state = ResetExecuted
	r.logger().Warn("database reset executed")

	// The mirrors describe data that no longer exists; clearing them is
	// best effort and never fails the reset itself.
	if r.Grid != nil {
		for _, sheet := range []string{SheetDatabase, SheetAliases} {
			if !r.Grid.HasSheet(sheet) {
				continue
			}
			if err := r.Grid.ClearSheet(sheet); err != nil {
				r.logger().Warn("failed to clear mirror after reset", "sheet", sheet, "error", err)
			}
		}
	}

	return r.state, nil
}
