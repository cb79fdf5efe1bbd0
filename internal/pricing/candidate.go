package pricing

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"cenar/internal/annotate"
	"cenar/internal/common"
	"cenar/internal/grid"
	"cenar/internal/model"
)

// CandidateContext is everything an interactive picker needs to present
// alternatives for one cell.
type CandidateContext struct {
	Description string
	Kind        model.PriceKind
	Sheet       string
	Row         int
	Col         int
	Candidates  []model.Candidate
}

// Candidates looks up match alternatives for a single active cell. The
// price kind is inferred from the cell's column: the labor column prices
// labor, everything else prices material. Returns ErrNoSelection when
// the row's description is too short to price.
func (e *Engine) Candidates(ctx context.Context, sheet string, row, col int, settings model.Settings) (*CandidateContext, error) {
	descCol, err := grid.ColumnIndex(settings.DescColumn)
	if err != nil {
		return nil, fmt.Errorf("description column: %w", err)
	}

	raw, err := e.Grid.Value(sheet, row, descCol)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(raw)
	if utf8.RuneCountInString(desc) < grid.MinDescriptionLength {
		return nil, common.NewUserError("Vybraná buňka nemá platný popis položky.", common.ErrNoSelection)
	}

	kind := model.KindMaterial
	if laborCol, err := grid.ColumnIndex(settings.LaborColumn); err == nil && col == laborCol {
		kind = model.KindLabor
	}

	results, err := e.Backend.MatchBulk(ctx, []string{desc}, kind, settings.Threshold)
	if err != nil {
		return nil, err
	}

	cc := &CandidateContext{
		Description: desc,
		Kind:        kind,
		Sheet:       sheet,
		Row:         row,
		Col:         col,
	}
	if m := results[desc]; m != nil {
		cc.Candidates = m.Candidates
	}
	return cc, nil
}

// ApplyCandidate writes a manually selected candidate into the cell and
// teaches the backend the new alias. The manual write is authoritative:
// full-confidence fill, manual note, identity recorded.
func (e *Engine) ApplyCandidate(ctx context.Context, cc *CandidateContext, chosen model.Candidate) error {
	if err := annotate.WriteCandidate(e.Grid, cc.Sheet, cc.Row, cc.Col, cc.Kind, chosen); err != nil {
		return err
	}

	e.recordIdentity(ctx, cc.Sheet, cc.Row, cc.Col, chosen.ID)

	if e.Learner != nil {
		e.Learner.Learn(ctx, cc.Description, chosen.ID)
	}

	if e.Store != nil {
		if err := e.Store.RecordOperation(ctx, "manual_pick", 1, 1); err != nil {
			e.logger().Warn("failed to record operation", "error", err)
		}
	}
	return nil
}
