package gsheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"cenar/internal/common"
	"cenar/internal/grid"
)

var _ grid.Grid = (*Spreadsheet)(nil)

// Spreadsheet is a Sheets API-backed grid. Every mutation goes straight
// to the remote document; Save is a no-op.
type Spreadsheet struct {
	service       *sheets.Service
	logger        *slog.Logger
	ctx           context.Context
	sheetIDs      map[string]int64
	spreadsheetID string
}

// New connects to the configured spreadsheet.
func New(ctx context.Context, config Config, logger *slog.Logger) (*Spreadsheet, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	s := &Spreadsheet{
		service:       service,
		logger:        logger,
		ctx:           ctx,
		spreadsheetID: config.SpreadsheetID,
		sheetIDs:      make(map[string]int64),
	}
	if err := s.refreshSheetIDs(); err != nil {
		return nil, err
	}
	return s, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

func (s *Spreadsheet) refreshSheetIDs() error {
	doc, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(s.ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to access spreadsheet %s: %w", s.spreadsheetID, err)
	}

	s.sheetIDs = make(map[string]int64, len(doc.Sheets))
	for _, sh := range doc.Sheets {
		if sh.Properties != nil {
			s.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	return nil
}

func (s *Spreadsheet) sheetID(name string) (int64, error) {
	id, ok := s.sheetIDs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", common.ErrSheetNotFound, name)
	}
	return id, nil
}

func cellRange(sheet string, row, col int) string {
	cell := grid.ColumnLetter(col) + strconv.Itoa(row)
	return fmt.Sprintf("'%s'!%s:%s", sheet, cell, cell)
}

// Value implements grid.Grid.
func (s *Spreadsheet) Value(sheet string, row, col int) (string, error) {
	if _, err := s.sheetID(sheet); err != nil {
		return "", err
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, cellRange(sheet, row, col)).
		Context(s.ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read cell: %w", err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

// SetValue implements grid.Grid.
func (s *Spreadsheet) SetValue(sheet string, row, col int, value any) error {
	vr := &sheets.ValueRange{Values: [][]any{{value}}}
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, cellRange(sheet, row, col), vr).
		ValueInputOption("RAW").Context(s.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write cell: %w", err)
	}
	return nil
}

// Note implements grid.Grid.
func (s *Spreadsheet) Note(sheet string, row, col int) (string, error) {
	notes, err := s.rowNotes(sheet, row, col, col)
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return "", nil
	}
	return notes[0], nil
}

func (s *Spreadsheet) rowNotes(sheet string, row, startCol, endCol int) ([]string, error) {
	if _, err := s.sheetID(sheet); err != nil {
		return nil, err
	}

	a1 := fmt.Sprintf("'%s'!%s%d:%s%d", sheet, grid.ColumnLetter(startCol), row, grid.ColumnLetter(endCol), row)
	doc, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Ranges(a1).
		Fields("sheets/data/rowData/values/note").
		Context(s.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	notes := make([]string, endCol-startCol+1)
	if len(doc.Sheets) == 0 || len(doc.Sheets[0].Data) == 0 || len(doc.Sheets[0].Data[0].RowData) == 0 {
		return notes, nil
	}
	for i, cell := range doc.Sheets[0].Data[0].RowData[0].Values {
		if i < len(notes) && cell != nil {
			notes[i] = cell.Note
		}
	}
	return notes, nil
}

// SetNote implements grid.Grid.
func (s *Spreadsheet) SetNote(sheet string, row, col int, note string) error {
	sheetID, err := s.sheetID(sheet)
	if err != nil {
		return err
	}

	req := &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range:  singleCellRange(sheetID, row, col),
			Fields: "note",
			Rows: []*sheets.RowData{{
				Values: []*sheets.CellData{{Note: note, ForceSendFields: []string{"Note"}}},
			}},
		},
	}
	return s.batchUpdate(req)
}

// Fill implements grid.Grid.
func (s *Spreadsheet) Fill(sheet string, row, col int) (string, error) {
	if _, err := s.sheetID(sheet); err != nil {
		return "", err
	}

	a1 := fmt.Sprintf("'%s'!%s%d", sheet, grid.ColumnLetter(col), row)
	doc, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Ranges(a1).
		Fields("sheets/data/rowData/values/userEnteredFormat/backgroundColor").
		Context(s.ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read format: %w", err)
	}

	if len(doc.Sheets) == 0 || len(doc.Sheets[0].Data) == 0 ||
		len(doc.Sheets[0].Data[0].RowData) == 0 ||
		len(doc.Sheets[0].Data[0].RowData[0].Values) == 0 {
		return "", nil
	}
	cell := doc.Sheets[0].Data[0].RowData[0].Values[0]
	if cell.UserEnteredFormat == nil || cell.UserEnteredFormat.BackgroundColor == nil {
		return "", nil
	}
	return colorToHex(cell.UserEnteredFormat.BackgroundColor), nil
}

// SetFill implements grid.Grid.
func (s *Spreadsheet) SetFill(sheet string, row, col int, hex string) error {
	sheetID, err := s.sheetID(sheet)
	if err != nil {
		return err
	}

	var format *sheets.CellFormat
	if hex == "" {
		format = &sheets.CellFormat{}
	} else {
		color, parseErr := hexToColor(hex)
		if parseErr != nil {
			return parseErr
		}
		format = &sheets.CellFormat{BackgroundColor: color}
	}

	req := &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  singleCellRange(sheetID, row, col),
			Fields: "userEnteredFormat.backgroundColor",
			Cell:   &sheets.CellData{UserEnteredFormat: format},
		},
	}
	return s.batchUpdate(req)
}

// HasSheet implements grid.Grid.
func (s *Spreadsheet) HasSheet(name string) bool {
	_, ok := s.sheetIDs[name]
	return ok
}

// EnsureSheet implements grid.Grid.
func (s *Spreadsheet) EnsureSheet(name string) error {
	if s.HasSheet(name) {
		return nil
	}

	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: name},
		},
	}
	if err := s.batchUpdate(req); err != nil {
		return err
	}
	return s.refreshSheetIDs()
}

// ClearSheet implements grid.Grid. Values, notes and formats go.
func (s *Spreadsheet) ClearSheet(name string) error {
	sheetID, err := s.sheetID(name)
	if err != nil {
		return err
	}

	req := &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range:  &sheets.GridRange{SheetId: sheetID},
			Fields: "*",
		},
	}
	return s.batchUpdate(req)
}

// InsertRowAfter implements grid.Grid.
func (s *Spreadsheet) InsertRowAfter(sheet string, row int) error {
	sheetID, err := s.sheetID(sheet)
	if err != nil {
		return err
	}

	req := &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: int64(row),
				EndIndex:   int64(row + 1),
			},
		},
	}
	return s.batchUpdate(req)
}

// DeleteRow implements grid.Grid.
func (s *Spreadsheet) DeleteRow(sheet string, row int) error {
	sheetID, err := s.sheetID(sheet)
	if err != nil {
		return err
	}

	req := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: int64(row - 1),
				EndIndex:   int64(row),
			},
		},
	}
	return s.batchUpdate(req)
}

// LastRow implements grid.Grid.
func (s *Spreadsheet) LastRow(sheet string) (int, error) {
	if _, err := s.sheetID(sheet); err != nil {
		return 0, err
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, fmt.Sprintf("'%s'", sheet)).
		Context(s.ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet: %w", err)
	}
	return len(resp.Values), nil
}

// LastColumn implements grid.Grid.
func (s *Spreadsheet) LastColumn(sheet string) (int, error) {
	if _, err := s.sheetID(sheet); err != nil {
		return 0, err
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, fmt.Sprintf("'%s'", sheet)).
		Context(s.ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet: %w", err)
	}

	last := 0
	for _, row := range resp.Values {
		if len(row) > last {
			last = len(row)
		}
	}
	return last, nil
}

// Save implements grid.Grid. The Sheets API persists every mutation
// immediately, so there is nothing left to flush.
func (s *Spreadsheet) Save() error {
	return nil
}

func (s *Spreadsheet) batchUpdate(reqs ...*sheets.Request) error {
	_, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: reqs,
	}).Context(s.ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update failed: %w", err)
	}
	return nil
}

func singleCellRange(sheetID int64, row, col int) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(row - 1),
		EndRowIndex:      int64(row),
		StartColumnIndex: int64(col - 1),
		EndColumnIndex:   int64(col),
	}
}

func hexToColor(hex string) (*sheets.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid fill color %q", hex)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid fill color %q: %w", hex, err)
	}

	return &sheets.Color{
		Red:   float64((value>>16)&0xff) / 255,
		Green: float64((value>>8)&0xff) / 255,
		Blue:  float64(value&0xff) / 255,
	}, nil
}

func colorToHex(c *sheets.Color) string {
	r := int(c.Red*255 + 0.5)
	g := int(c.Green*255 + 0.5)
	b := int(c.Blue*255 + 0.5)
	if r == 255 && g == 255 && b == 255 {
		// Sheets reports cleared backgrounds as white.
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
