// Package admin maintains the editable catalog mirror: dedicated sheets
// that hold a bulk-editable copy of the backend catalog and its learned
// aliases, plus the guarded destructive reset.
package admin

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"cenar/internal/common"
	"cenar/internal/grid"
	"cenar/internal/model"
	"cenar/internal/pricebook"
)

// Names of the dedicated admin sheets.
const (
	SheetDatabase = "ADMIN_DATABASE"
	SheetAliases  = "ADMIN_ALIASY"
)

// databaseHeader is row 1 of the catalog mirror. Column order is part of
// the mirror contract; Sync reads positionally.
var databaseHeader = []string{
	"ID", "Název", "Cena Materiál", "Cena Montáž",
	"Jednotka", "Poslední Zdroj", "Poslední Datum",
}

// Mirror manages the ADMIN_DATABASE sheet.
type Mirror struct {
	Backend pricebook.Service
	Grid    grid.Grid
	Logger  *slog.Logger
}

func (m *Mirror) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// Load replaces the mirror sheet with a fresh copy of the backend
// catalog. Any local edits are discarded.
func (m *Mirror) Load(ctx context.Context) (int, error) {
	items, err := m.Backend.AdminItems(ctx)
	if err != nil {
		return 0, err
	}

	if err := m.Grid.EnsureSheet(SheetDatabase); err != nil {
		return 0, err
	}
	if err := m.Grid.ClearSheet(SheetDatabase); err != nil {
		return 0, err
	}

	for col, h := range databaseHeader {
		if err := m.Grid.SetValue(SheetDatabase, 1, col+1, h); err != nil {
			return 0, err
		}
	}

	for i, item := range items {
		row := i + 2
		cells := []any{
			idCell(item.ID), item.Name, item.PriceMaterial, item.PriceLabor,
			item.Unit, item.Source, item.Date,
		}
		for col, v := range cells {
			if err := m.Grid.SetValue(SheetDatabase, row, col+1, v); err != nil {
				return 0, err
			}
		}
	}

	m.logger().Info("catalog mirror loaded", "items", len(items))
	return len(items), nil
}

// Sync pushes every mirror row back to the backend in one batch. Rows
// with an empty name are dropped; a blank ID marks a new item and the
// server decides insert versus update.
func (m *Mirror) Sync(ctx context.Context) (int, error) {
	items, err := m.readRows(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, common.NewUserError("Sheet ADMIN_DATABASE neobsahuje žádné položky.", common.ErrMirrorNotLoaded)
	}

	if err := m.Backend.AdminSync(ctx, items); err != nil {
		return 0, err
	}

	m.logger().Info("catalog mirror synced", "items", len(items))
	return len(items), nil
}

// readRows parses the mirror sheet back into catalog items, applying
// the lenient coercions the backend expects.
func (m *Mirror) readRows(_ context.Context) ([]model.CatalogItem, error) {
	if !m.Grid.HasSheet(SheetDatabase) {
		return nil, common.NewUserError("Sheet ADMIN_DATABASE neexistuje. Nejprve načtěte databázi.", common.ErrMirrorNotLoaded)
	}

	lastRow, err := m.Grid.LastRow(SheetDatabase)
	if err != nil {
		return nil, err
	}

	var items []model.CatalogItem
	for row := 2; row <= lastRow; row++ {
		cells := make([]string, len(databaseHeader))
		for col := range cells {
			v, err := m.Grid.Value(SheetDatabase, row, col+1)
			if err != nil {
				return nil, err
			}
			cells[col] = strings.TrimSpace(v)
		}

		name := cells[1]
		if name == "" {
			continue
		}

		item := model.CatalogItem{
			Name:          name,
			PriceMaterial: parsePrice(cells[2]),
			PriceLabor:    parsePrice(cells[3]),
			Unit:          cells[4],
			Source:        cells[5],
			Date:          cells[6],
		}
		if item.Unit == "" {
			item.Unit = "ks"
		}
		if id, err := strconv.ParseInt(cells[0], 10, 64); err == nil {
			item.ID = &id
		}

		items = append(items, item)
	}
	return items, nil
}

// DeleteSelected removes the given mirror rows and deletes their backend
// items in a single batch. The ID set is computed once up front, before
// any row removal shifts positions; new rows without an ID are removed
// locally only.
func (m *Mirror) DeleteSelected(ctx context.Context, rows []int) (int, error) {
	if !m.Grid.HasSheet(SheetDatabase) {
		return 0, common.NewUserError("Sheet ADMIN_DATABASE neexistuje. Nejprve načtěte databázi.", common.ErrMirrorNotLoaded)
	}

	ids, rowSet, err := m.collectIDs(rows)
	if err != nil {
		return 0, err
	}

	if len(ids) > 0 {
		if err := m.Backend.AdminBatchDelete(ctx, ids); err != nil {
			return 0, err
		}
	}

	if err := deleteRowsBottomUp(m.Grid, SheetDatabase, rowSet); err != nil {
		return len(ids), err
	}

	m.logger().Info("catalog rows deleted", "rows", len(rowSet), "backend_ids", len(ids))
	return len(ids), nil
}

func (m *Mirror) collectIDs(rows []int) (ids []int64, rowSet []int, err error) {
	seen := map[int]bool{}
	for _, row := range rows {
		if row < 2 || seen[row] {
			continue
		}
		seen[row] = true
		rowSet = append(rowSet, row)

		v, err := m.Grid.Value(SheetDatabase, row, 1)
		if err != nil {
			return nil, nil, err
		}
		if id, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64); perr == nil {
			ids = append(ids, id)
		}
	}
	return ids, rowSet, nil
}

func idCell(id *int64) any {
	if id == nil {
		return ""
	}
	return *id
}

func parsePrice(s string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// deleteRowsBottomUp removes rows highest-first so earlier deletions do
// not shift the positions of rows still pending.
func deleteRowsBottomUp(g grid.Grid, sheet string, rows []int) error {
	sorted := append([]int(nil), rows...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, row := range sorted {
		if err := g.DeleteRow(sheet, row); err != nil {
			return err
		}
	}
	return nil
}
