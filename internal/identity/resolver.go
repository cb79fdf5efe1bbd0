// Package identity recovers backend item ids for grid cells. The grid
// has no foreign-key concept, so identity lives in note text (and, as a
// rebuildable shortcut, in the sqlite side-table).
package identity

import (
	"context"
	"strconv"
	"strings"

	"cenar/internal/annotate"
	"cenar/internal/grid"
	"cenar/internal/storage"
)

// MaxScanColumns bounds the row-wide note scan fallback.
const MaxScanColumns = 25

// Resolver finds the item id behind a cell. Store and MirrorSheet are
// both optional; with neither set only the note-based recovery runs.
type Resolver struct {
	Store       *storage.SQLiteStorage
	Document    string
	MirrorSheet string
}

// ItemID resolves the backend item id for the given cell.
//
// Resolution order: the side-table index (exact cell, then any cell of
// the row), the mirror sheet's first column when the cell sits in the
// mirror, the cell's own note, and finally a left-to-right scan of the
// row's first MaxScanColumns notes for the ID token. False means the
// row was never annotated in this format or the annotation is gone.
func (r *Resolver) ItemID(ctx context.Context, g grid.Grid, sheet string, row, col int) (int64, bool, error) {
	if r.Store != nil {
		if id, ok, err := r.storeLookup(ctx, sheet, row, col); err != nil {
			return 0, false, err
		} else if ok {
			return id, true, nil
		}
	}

	if r.MirrorSheet != "" && sheet == r.MirrorSheet {
		return mirrorRowID(g, sheet, row)
	}

	note, err := g.Note(sheet, row, col)
	if err != nil {
		return 0, false, err
	}
	if note == "" {
		note, err = r.scanRowNotes(g, sheet, row)
		if err != nil {
			return 0, false, err
		}
	}

	if note == "" {
		return 0, false, nil
	}
	id, ok := annotate.ItemID(note)
	return id, ok, nil
}

func (r *Resolver) storeLookup(ctx context.Context, sheet string, row, col int) (int64, bool, error) {
	ref := storage.CellRef{Document: r.Document, Sheet: sheet, Row: row, Col: col}
	if id, ok, err := r.Store.CellID(ctx, ref); err != nil || ok {
		return id, ok, err
	}
	return r.Store.RowID(ctx, r.Document, sheet, row)
}

func mirrorRowID(g grid.Grid, sheet string, row int) (int64, bool, error) {
	value, err := g.Value(sheet, row, 1)
	if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 0 {
		return 0, false, nil
	}
	return id, true, nil
}

func (r *Resolver) scanRowNotes(g grid.Grid, sheet string, row int) (string, error) {
	lastCol, err := g.LastColumn(sheet)
	if err != nil {
		return "", err
	}
	if lastCol > MaxScanColumns {
		lastCol = MaxScanColumns
	}

	for col := 1; col <= lastCol; col++ {
		note, err := g.Note(sheet, row, col)
		if err != nil {
			return "", err
		}
		if annotate.HasItemID(note) {
			return note, nil
		}
	}
	return "", nil
}
