// Package pricing runs the main pricing path: scan a selection, ask the
// backend in bulk, write prices and annotations back.
package pricing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"cenar/internal/annotate"
	"cenar/internal/common"
	"cenar/internal/feedback"
	"cenar/internal/grid"
	"cenar/internal/model"
	"cenar/internal/pricebook"
	"cenar/internal/storage"
)

// DedupePolicy decides how scanned rows map to backend lookup keys.
type DedupePolicy int

const (
	// KeyByDescription collapses rows with identical description text
	// onto one lookup whose single result lands on every such row. This
	// is the documented default; rows that legitimately share text but
	// should price independently need KeyByRow.
	KeyByDescription DedupePolicy = iota
	// KeyByRow prices every row independently, trading extra backend
	// round trips for per-row results.
	KeyByRow
)

// Options tune one pricing pass.
type Options struct {
	Dedupe       DedupePolicy
	ShowProgress bool
}

// Summary reports what a pricing pass did. Unmatched lists the rows the
// backend offered no usable material price for, in scan order, so an
// interactive follow-up can revisit them.
type Summary struct {
	Unmatched       []grid.ScannedRow
	Scanned         int
	MatchedMaterial int
	MatchedLabor    int
}

// Engine wires the pricing path together. Store is optional; with it
// set, written identities are mirrored into the side-table and the pass
// is recorded in the operation log.
type Engine struct {
	Backend  pricebook.Service
	Grid     grid.Grid
	Learner  *feedback.Learner
	Store    *storage.SQLiteStorage
	Logger   *slog.Logger
	Document string
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// PriceSelection runs the dual pricing pass (material + labor) over a
// selection. Settings are resolved by the caller and passed in whole;
// nothing here consults ambient configuration.
func (e *Engine) PriceSelection(ctx context.Context, sel grid.Selection, settings model.Settings, opts Options) (*Summary, error) {
	descCol, err := grid.ColumnIndex(settings.DescColumn)
	if err != nil {
		return nil, fmt.Errorf("description column: %w", err)
	}
	materialCol, err := grid.ColumnIndex(settings.MaterialColumn)
	if err != nil {
		return nil, fmt.Errorf("material column: %w", err)
	}
	laborCol, err := grid.ColumnIndex(settings.LaborColumn)
	if err != nil {
		return nil, fmt.Errorf("labor column: %w", err)
	}

	rows, err := grid.ScanDescriptions(e.Grid, sel, descCol)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.NewUserError("Žádné položky k ocenění (popis příliš krátký nebo prázdný).", common.ErrNothingToPrice)
	}

	e.logger().Info("pricing selection",
		"sheet", sel.Sheet,
		"rows", len(rows),
		"threshold", settings.Threshold)

	materialResults, laborResults := e.fetchBoth(ctx, rows, settings.Threshold, opts.Dedupe)

	summary := &Summary{Scanned: len(rows)}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(rows)), "Oceňuji položky")
	}

	for _, scanned := range rows {
		key := lookupKey(scanned, opts.Dedupe)

		if m := materialResults[key]; m != nil && m.Price > 0 {
			if err := e.writeResult(ctx, sel.Sheet, scanned.Row, materialCol, model.KindMaterial, *m); err != nil {
				return summary, err
			}
			summary.MatchedMaterial++
		} else {
			summary.Unmatched = append(summary.Unmatched, scanned)
		}

		if l := laborResults[key]; l != nil && l.Price > 0 {
			if err := e.writeResult(ctx, sel.Sheet, scanned.Row, laborCol, model.KindLabor, *l); err != nil {
				return summary, err
			}
			summary.MatchedLabor++
		} else if err := annotate.WriteLaborMiss(e.Grid, sel.Sheet, scanned.Row, laborCol); err != nil {
			return summary, err
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if e.Store != nil {
		if err := e.Store.RecordOperation(ctx, "price", summary.Scanned, summary.MatchedMaterial+summary.MatchedLabor); err != nil {
			e.logger().Warn("failed to record operation", "error", err)
		}
	}

	return summary, nil
}

// fetchBoth issues the material and labor lookups. Under the default
// policy that is exactly two backend round trips regardless of
// selection size. A failed call degrades to "no result" for its kind.
func (e *Engine) fetchBoth(ctx context.Context, rows []grid.ScannedRow, threshold float64, policy DedupePolicy) (material, labor map[string]*model.MatchResult) {
	if policy == KeyByRow {
		return e.fetchPerRow(ctx, rows, threshold)
	}

	keys := uniqueDescriptions(rows)
	material = e.fetchKind(ctx, keys, model.KindMaterial, threshold)
	labor = e.fetchKind(ctx, keys, model.KindLabor, threshold)
	return material, labor
}

func (e *Engine) fetchKind(ctx context.Context, keys []string, kind model.PriceKind, threshold float64) map[string]*model.MatchResult {
	results, err := e.Backend.MatchBulk(ctx, keys, kind, threshold)
	if err != nil {
		e.logger().Warn("bulk match failed, treating as no result", "kind", kind, "error", err)
		return map[string]*model.MatchResult{}
	}
	return results
}

func (e *Engine) fetchPerRow(ctx context.Context, rows []grid.ScannedRow, threshold float64) (material, labor map[string]*model.MatchResult) {
	material = make(map[string]*model.MatchResult, len(rows))
	labor = make(map[string]*model.MatchResult, len(rows))

	for _, scanned := range rows {
		key := lookupKey(scanned, KeyByRow)
		if m := e.fetchKind(ctx, []string{scanned.Description}, model.KindMaterial, threshold); m[scanned.Description] != nil {
			material[key] = m[scanned.Description]
		}
		if l := e.fetchKind(ctx, []string{scanned.Description}, model.KindLabor, threshold); l[scanned.Description] != nil {
			labor[key] = l[scanned.Description]
		}
	}
	return material, labor
}

func (e *Engine) writeResult(ctx context.Context, sheet string, row, col int, kind model.PriceKind, m model.MatchResult) error {
	if m.Ambiguous() {
		e.logger().Debug("match has alternatives", "row", row, "kind", kind, "candidates", len(m.Candidates))
	}
	if err := annotate.WriteMatch(e.Grid, sheet, row, col, kind, m); err != nil {
		return err
	}
	e.recordIdentity(ctx, sheet, row, col, m.ItemID)
	return nil
}

func (e *Engine) recordIdentity(ctx context.Context, sheet string, row, col int, itemID int64) {
	if e.Store == nil || itemID <= 0 {
		return
	}
	ref := storage.CellRef{Document: e.Document, Sheet: sheet, Row: row, Col: col}
	if err := e.Store.SaveCellID(ctx, ref, itemID); err != nil {
		e.logger().Warn("failed to index cell identity", "error", err)
	}
}

func lookupKey(row grid.ScannedRow, policy DedupePolicy) string {
	if policy == KeyByRow {
		return fmt.Sprintf("%d\x00%s", row.Row, row.Description)
	}
	return row.Description
}

func uniqueDescriptions(rows []grid.ScannedRow) []string {
	seen := make(map[string]struct{}, len(rows))
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Description]; ok {
			continue
		}
		seen[r.Description] = struct{}{}
		keys = append(keys, r.Description)
	}
	return keys
}
