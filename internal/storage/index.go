package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CellRef addresses one cell of one document.
type CellRef struct {
	Document string
	Sheet    string
	Row      int
	Col      int
}

// SaveCellID records (or replaces) the backend item id for a cell.
func (s *SQLiteStorage) SaveCellID(ctx context.Context, ref CellRef, itemID int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO cell_index (document, sheet, row, col, item_id, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(document, sheet, row, col) DO UPDATE SET
			item_id = excluded.item_id,
			updated_at = CURRENT_TIMESTAMP`,
		ref.Document, ref.Sheet, ref.Row, ref.Col, itemID)
	if err != nil {
		return fmt.Errorf("failed to save cell id: %w", err)
	}
	return nil
}

// CellID looks up the item id for a cell. The second return is false
// when the cell was never indexed.
func (s *SQLiteStorage) CellID(ctx context.Context, ref CellRef) (int64, bool, error) {
	var itemID int64
	err := s.db.QueryRowContext(ctx, `SELECT item_id FROM cell_index
		WHERE document = ? AND sheet = ? AND row = ? AND col = ?`,
		ref.Document, ref.Sheet, ref.Row, ref.Col).Scan(&itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up cell id: %w", err)
	}
	return itemID, true, nil
}

// RowID looks up any indexed item id on a row, lowest column first.
func (s *SQLiteStorage) RowID(ctx context.Context, document, sheet string, row int) (int64, bool, error) {
	var itemID int64
	err := s.db.QueryRowContext(ctx, `SELECT item_id FROM cell_index
		WHERE document = ? AND sheet = ? AND row = ?
		ORDER BY col LIMIT 1`,
		document, sheet, row).Scan(&itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up row id: %w", err)
	}
	return itemID, true, nil
}

// ForgetSheet drops every index entry of one sheet, e.g. after the
// mirror region is cleared.
func (s *SQLiteStorage) ForgetSheet(ctx context.Context, document, sheet string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cell_index WHERE document = ? AND sheet = ?`,
		document, sheet)
	if err != nil {
		return fmt.Errorf("failed to forget sheet: %w", err)
	}
	return nil
}

// Operation is one logged bridge operation.
type Operation struct {
	StartedAt time.Time
	Kind      string
	ID        int64
	Rows      int
	Matched   int
}

// RecordOperation appends one entry to the operation log.
func (s *SQLiteStorage) RecordOperation(ctx context.Context, kind string, rows, matched int) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO operations (kind, rows, matched) VALUES (?, ?, ?)`,
		kind, rows, matched)
	if err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}
	return nil
}

// RecentOperations returns the newest entries of the operation log.
func (s *SQLiteStorage) RecentOperations(ctx context.Context, limit int) ([]Operation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, rows, matched, started_at
		FROM operations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ops []Operation
	for rows.Next() {
		var op Operation
		if err := rows.Scan(&op.ID, &op.Kind, &op.Rows, &op.Matched, &op.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
