package grid

import (
	"fmt"
	"sort"
	"strconv"

	"cenar/internal/common"
)

type memCell struct {
	value string
	note  string
	fill  string
}

type memSheet struct {
	cells map[[2]int]*memCell
}

var _ Grid = (*Memory)(nil)

// Memory is an in-memory Grid used by tests and as a stand-in host.
type Memory struct {
	sheets map[string]*memSheet
	Saved  int
}

// NewMemory creates an empty in-memory grid.
func NewMemory(sheetNames ...string) *Memory {
	m := &Memory{sheets: make(map[string]*memSheet)}
	for _, name := range sheetNames {
		_ = m.EnsureSheet(name)
	}
	return m
}

func (m *Memory) sheet(name string) (*memSheet, error) {
	s, ok := m.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrSheetNotFound, name)
	}
	return s, nil
}

func (m *Memory) cell(sheet string, row, col int, create bool) (*memCell, error) {
	s, err := m.sheet(sheet)
	if err != nil {
		return nil, err
	}

	key := [2]int{row, col}
	c, ok := s.cells[key]
	if !ok {
		if !create {
			return nil, nil
		}
		c = &memCell{}
		s.cells[key] = c
	}
	return c, nil
}

// Value implements Grid.
func (m *Memory) Value(sheet string, row, col int) (string, error) {
	c, err := m.cell(sheet, row, col, false)
	if err != nil || c == nil {
		return "", err
	}
	return c.value, nil
}

// SetValue implements Grid.
func (m *Memory) SetValue(sheet string, row, col int, value any) error {
	c, err := m.cell(sheet, row, col, true)
	if err != nil {
		return err
	}
	c.value = formatValue(value)
	return nil
}

// Note implements Grid.
func (m *Memory) Note(sheet string, row, col int) (string, error) {
	c, err := m.cell(sheet, row, col, false)
	if err != nil || c == nil {
		return "", err
	}
	return c.note, nil
}

// SetNote implements Grid.
func (m *Memory) SetNote(sheet string, row, col int, note string) error {
	c, err := m.cell(sheet, row, col, true)
	if err != nil {
		return err
	}
	c.note = note
	return nil
}

// Fill implements Grid.
func (m *Memory) Fill(sheet string, row, col int) (string, error) {
	c, err := m.cell(sheet, row, col, false)
	if err != nil || c == nil {
		return "", err
	}
	return c.fill, nil
}

// SetFill implements Grid.
func (m *Memory) SetFill(sheet string, row, col int, hex string) error {
	c, err := m.cell(sheet, row, col, true)
	if err != nil {
		return err
	}
	c.fill = hex
	return nil
}

// HasSheet implements Grid.
func (m *Memory) HasSheet(name string) bool {
	_, ok := m.sheets[name]
	return ok
}

// EnsureSheet implements Grid.
func (m *Memory) EnsureSheet(name string) error {
	if _, ok := m.sheets[name]; !ok {
		m.sheets[name] = &memSheet{cells: make(map[[2]int]*memCell)}
	}
	return nil
}

// ClearSheet implements Grid.
func (m *Memory) ClearSheet(name string) error {
	s, err := m.sheet(name)
	if err != nil {
		return err
	}
	s.cells = make(map[[2]int]*memCell)
	return nil
}

// InsertRowAfter implements Grid. Rows below shift down by one.
func (m *Memory) InsertRowAfter(sheet string, row int) error {
	s, err := m.sheet(sheet)
	if err != nil {
		return err
	}

	moved := make(map[[2]int]*memCell, len(s.cells))
	for key, c := range s.cells {
		if key[0] > row {
			moved[[2]int{key[0] + 1, key[1]}] = c
		} else {
			moved[key] = c
		}
	}
	s.cells = moved
	return nil
}

// DeleteRow implements Grid. Rows below shift up by one.
func (m *Memory) DeleteRow(sheet string, row int) error {
	s, err := m.sheet(sheet)
	if err != nil {
		return err
	}

	moved := make(map[[2]int]*memCell, len(s.cells))
	for key, c := range s.cells {
		switch {
		case key[0] == row:
			// dropped
		case key[0] > row:
			moved[[2]int{key[0] - 1, key[1]}] = c
		default:
			moved[key] = c
		}
	}
	s.cells = moved
	return nil
}

// LastRow implements Grid.
func (m *Memory) LastRow(sheet string) (int, error) {
	s, err := m.sheet(sheet)
	if err != nil {
		return 0, err
	}

	last := 0
	for key, c := range s.cells {
		if key[0] > last && (c.value != "" || c.note != "") {
			last = key[0]
		}
	}
	return last, nil
}

// LastColumn implements Grid.
func (m *Memory) LastColumn(sheet string) (int, error) {
	s, err := m.sheet(sheet)
	if err != nil {
		return 0, err
	}

	last := 0
	for key, c := range s.cells {
		if key[1] > last && (c.value != "" || c.note != "") {
			last = key[1]
		}
	}
	return last, nil
}

// Save implements Grid. The in-memory grid only counts invocations.
func (m *Memory) Save() error {
	m.Saved++
	return nil
}

// SheetNames returns the sheet names in sorted order.
func (m *Memory) SheetNames() []string {
	names := make([]string, 0, len(m.sheets))
	for name := range m.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
