// Package xlsx implements the grid abstraction on top of a local .xlsx
// workbook. Cell notes map to comments, fills map to pattern styles.
package xlsx

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"cenar/internal/common"
	"cenar/internal/grid"
)

const commentAuthor = "cenar"

var _ grid.Grid = (*Workbook)(nil)

// Workbook is an excelize-backed grid.
type Workbook struct {
	file   *excelize.File
	styles map[string]int
	path   string
}

// Open opens an existing workbook, or creates a new one when the file
// does not exist yet.
func Open(path string) (*Workbook, error) {
	var f *excelize.File

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f = excelize.NewFile()
	} else {
		var openErr error
		f, openErr = excelize.OpenFile(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, openErr)
		}
	}

	return &Workbook{
		file:   f,
		path:   path,
		styles: make(map[string]int),
	}, nil
}

// Close releases the underlying file handle without saving.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func cellName(row, col int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("invalid cell coordinates (%d,%d): %w", row, col, err)
	}
	return name, nil
}

// Value implements grid.Grid.
func (w *Workbook) Value(sheet string, row, col int) (string, error) {
	if err := w.checkSheet(sheet); err != nil {
		return "", err
	}
	cell, err := cellName(row, col)
	if err != nil {
		return "", err
	}
	return w.file.GetCellValue(sheet, cell)
}

// SetValue implements grid.Grid.
func (w *Workbook) SetValue(sheet string, row, col int, value any) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(sheet, cell, value)
}

// Note implements grid.Grid.
func (w *Workbook) Note(sheet string, row, col int) (string, error) {
	if err := w.checkSheet(sheet); err != nil {
		return "", err
	}
	cell, err := cellName(row, col)
	if err != nil {
		return "", err
	}

	comments, err := w.file.GetComments(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to read comments: %w", err)
	}
	for _, c := range comments {
		if c.Cell == cell {
			return commentText(c), nil
		}
	}
	return "", nil
}

// SetNote implements grid.Grid. An empty note removes the comment.
func (w *Workbook) SetNote(sheet string, row, col int, note string) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}

	// excelize refuses duplicate comments on one cell.
	if err := w.file.DeleteComment(sheet, cell); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if note == "" {
		return nil
	}

	return w.file.AddComment(sheet, excelize.Comment{
		Cell:      cell,
		Author:    commentAuthor,
		Paragraph: []excelize.RichTextRun{{Text: note}},
	})
}

// Fill implements grid.Grid.
func (w *Workbook) Fill(sheet string, row, col int) (string, error) {
	if err := w.checkSheet(sheet); err != nil {
		return "", err
	}
	cell, err := cellName(row, col)
	if err != nil {
		return "", err
	}

	styleID, err := w.file.GetCellStyle(sheet, cell)
	if err != nil {
		return "", fmt.Errorf("failed to read cell style: %w", err)
	}
	if styleID == 0 {
		return "", nil
	}

	style, err := w.file.GetStyle(styleID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve style %d: %w", styleID, err)
	}
	if style == nil || len(style.Fill.Color) == 0 {
		return "", nil
	}
	return normalizeColor(style.Fill.Color[0]), nil
}

// SetFill implements grid.Grid. An empty hex resets the cell style.
func (w *Workbook) SetFill(sheet string, row, col int, hex string) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}

	if hex == "" {
		return w.file.SetCellStyle(sheet, cell, cell, 0)
	}

	styleID, ok := w.styles[hex]
	if !ok {
		styleID, err = w.file.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}},
		})
		if err != nil {
			return fmt.Errorf("failed to create fill style %s: %w", hex, err)
		}
		w.styles[hex] = styleID
	}
	return w.file.SetCellStyle(sheet, cell, cell, styleID)
}

// HasSheet implements grid.Grid.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// EnsureSheet implements grid.Grid.
func (w *Workbook) EnsureSheet(name string) error {
	if w.HasSheet(name) {
		return nil
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return nil
}

// ClearSheet implements grid.Grid. Values, styles and comments go.
func (w *Workbook) ClearSheet(name string) error {
	if err := w.checkSheet(name); err != nil {
		return err
	}

	comments, err := w.file.GetComments(name)
	if err != nil {
		return fmt.Errorf("failed to read comments: %w", err)
	}
	for _, c := range comments {
		if err := w.file.DeleteComment(name, c.Cell); err != nil {
			return fmt.Errorf("failed to delete comment at %s: %w", c.Cell, err)
		}
	}

	rows, err := w.file.GetRows(name)
	if err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}
	for i := len(rows); i >= 1; i-- {
		if err := w.file.RemoveRow(name, i); err != nil {
			return fmt.Errorf("failed to remove row %d: %w", i, err)
		}
	}
	return nil
}

// InsertRowAfter implements grid.Grid.
func (w *Workbook) InsertRowAfter(sheet string, row int) error {
	return w.file.InsertRows(sheet, row+1, 1)
}

// DeleteRow implements grid.Grid.
func (w *Workbook) DeleteRow(sheet string, row int) error {
	return w.file.RemoveRow(sheet, row)
}

// LastRow implements grid.Grid.
func (w *Workbook) LastRow(sheet string) (int, error) {
	if err := w.checkSheet(sheet); err != nil {
		return 0, err
	}
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// LastColumn implements grid.Grid.
func (w *Workbook) LastColumn(sheet string) (int, error) {
	if err := w.checkSheet(sheet); err != nil {
		return 0, err
	}
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return 0, err
	}

	last := 0
	for _, row := range rows {
		if len(row) > last {
			last = len(row)
		}
	}
	return last, nil
}

// Save implements grid.Grid.
func (w *Workbook) Save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) checkSheet(name string) error {
	if !w.HasSheet(name) {
		return fmt.Errorf("%w: %s", common.ErrSheetNotFound, name)
	}
	return nil
}

func commentText(c excelize.Comment) string {
	if len(c.Paragraph) > 0 {
		var b strings.Builder
		for _, run := range c.Paragraph {
			b.WriteString(run.Text)
		}
		return b.String()
	}
	return c.Text
}

func normalizeColor(color string) string {
	color = strings.TrimPrefix(color, "#")
	if len(color) == 8 {
		// ARGB with an opaque alpha channel
		color = color[2:]
	}
	return "#" + strings.ToLower(color)
}
