package grid

import (
	"strings"
	"unicode/utf8"
)

// MinDescriptionLength is the shortest cell text that still counts as a
// priceable description; anything shorter is silently skipped.
const MinDescriptionLength = 3

// ScannedRow pairs an absolute row number with the description read from
// the description column of that row.
type ScannedRow struct {
	Description string
	Row         int
}

// ScanDescriptions walks every row of the selection and returns the
// eligible (row, description) pairs. Row numbers are absolute document
// positions, not selection-relative; all downstream writes use them.
func ScanDescriptions(g Grid, sel Selection, descCol int) ([]ScannedRow, error) {
	rows := make([]ScannedRow, 0, sel.Rows())

	for row := sel.StartRow; row <= sel.EndRow; row++ {
		value, err := g.Value(sel.Sheet, row, descCol)
		if err != nil {
			return nil, err
		}

		desc := strings.TrimSpace(value)
		if utf8.RuneCountInString(desc) < MinDescriptionLength {
			continue
		}

		rows = append(rows, ScannedRow{Row: row, Description: desc})
	}

	return rows, nil
}
