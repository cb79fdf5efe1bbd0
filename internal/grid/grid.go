// Package grid abstracts the tabular document host: cell values, free-text
// notes and background fills are the only per-cell channels available.
package grid

import (
	"fmt"
	"strings"
)

// Grid is the capability set the host provides. Rows and columns are
// 1-based and absolute within a sheet; fills are hex colors, "" clears.
type Grid interface {
	Value(sheet string, row, col int) (string, error)
	SetValue(sheet string, row, col int, value any) error
	Note(sheet string, row, col int) (string, error)
	SetNote(sheet string, row, col int, note string) error
	Fill(sheet string, row, col int) (string, error)
	SetFill(sheet string, row, col int, hex string) error

	HasSheet(name string) bool
	EnsureSheet(name string) error
	ClearSheet(name string) error
	InsertRowAfter(sheet string, row int) error
	DeleteRow(sheet string, row int) error
	LastRow(sheet string) (int, error)
	LastColumn(sheet string) (int, error)

	Save() error
}

// Selection is the bounding rectangle of a user selection. Non-contiguous
// selections collapse to their bounding rectangle before any scan.
type Selection struct {
	Sheet    string
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
}

// Rows returns the number of rows covered by the selection.
func (s Selection) Rows() int {
	return s.EndRow - s.StartRow + 1
}

// ColumnIndex converts a column letter reference to its 1-based index
// using base-26 positional arithmetic: "A"=1, "Z"=26, "AA"=27.
func ColumnIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return 0, fmt.Errorf("empty column reference")
	}

	col := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column reference %q", letter)
		}
		col = col*26 + int(r-'A'+1)
	}
	return col, nil
}

// ColumnLetter is the inverse of ColumnIndex.
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}

	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// ParseSelection parses an "A2:J40" style range into a Selection on the
// given sheet. A single cell reference selects one cell.
func ParseSelection(sheet, ref string) (Selection, error) {
	parts := strings.SplitN(ref, ":", 2)

	startCol, startRow, err := parseCellRef(parts[0])
	if err != nil {
		return Selection{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}

	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = parseCellRef(parts[1])
		if err != nil {
			return Selection{}, fmt.Errorf("invalid range %q: %w", ref, err)
		}
	}

	if endRow < startRow || endCol < startCol {
		return Selection{}, fmt.Errorf("inverted range %q", ref)
	}

	return Selection{
		Sheet:    sheet,
		StartRow: startRow,
		EndRow:   endRow,
		StartCol: startCol,
		EndCol:   endCol,
	}, nil
}

func parseCellRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("malformed cell reference %q", ref)
	}

	col, err = ColumnIndex(ref[:i])
	if err != nil {
		return 0, 0, err
	}

	if _, err = fmt.Sscanf(ref[i:], "%d", &row); err != nil || row < 1 {
		return 0, 0, fmt.Errorf("malformed row in cell reference %q", ref)
	}
	return col, row, nil
}
