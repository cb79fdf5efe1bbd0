package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cenar/internal/cli"
	"cenar/internal/common"
	"cenar/internal/config"
	"cenar/internal/grid"
	"cenar/internal/grid/gsheets"
	"cenar/internal/grid/xlsx"
	"cenar/internal/model"
	"cenar/internal/pricebook"
	"cenar/internal/storage"
)

// openGrid opens the configured document. An --file flag wins over a
// spreadsheet ID; the returned string identifies the document in the
// local cell index.
func openGrid(cmd *cobra.Command) (grid.Grid, string, error) {
	ctx := cmd.Context()

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		path := config.ExpandPath(file)
		wb, err := xlsx.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open workbook: %w", err)
		}
		return wb, path, nil
	}

	spreadsheetID, _ := cmd.Flags().GetString("spreadsheet-id")
	cfg, err := config.LoadSheetsConfig(spreadsheetID)
	if err != nil {
		return nil, "", common.NewUserError("Zadejte --file nebo --spreadsheet-id (případně CENAR_SHEETS_* proměnné).", err)
	}

	sheet, err := gsheets.New(ctx, *cfg, slog.Default())
	if err != nil {
		return nil, "", fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	return sheet, cfg.SpreadsheetID, nil
}

// newBackend creates the pricing backend client.
func newBackend() *pricebook.Client {
	return pricebook.NewClient(config.BackendURL(), slog.Default())
}

// openIndex opens the local cell-index database and runs migrations.
// The index is an optimization: failure to open it degrades to note
// scanning rather than failing the command.
func openIndex(cmd *cobra.Command) *storage.SQLiteStorage {
	store, err := storage.NewSQLiteStorage(config.IndexPath())
	if err != nil {
		slog.Warn("cell index unavailable", "error", err)
		return nil
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		slog.Warn("cell index migration failed", "error", err)
		_ = store.Close()
		return nil
	}
	return store
}

// resolveSettings loads the stored settings and applies flag overrides.
func resolveSettings(cmd *cobra.Command) (model.Settings, error) {
	s := config.LoadSettings()

	if cmd.Flags().Changed("threshold") {
		s.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("desc-column") {
		s.DescColumn, _ = cmd.Flags().GetString("desc-column")
	}
	if cmd.Flags().Changed("material-column") {
		s.MaterialColumn, _ = cmd.Flags().GetString("material-column")
	}
	if cmd.Flags().Changed("labor-column") {
		s.LaborColumn, _ = cmd.Flags().GetString("labor-column")
	}

	if s.Threshold < 0 || s.Threshold > 1 {
		return s, common.NewUserError("Práh shody musí být mezi 0 a 1.", common.ErrInvalidConfig)
	}
	for _, col := range []string{s.DescColumn, s.MaterialColumn, s.LaborColumn} {
		if _, err := grid.ColumnIndex(col); err != nil {
			return s, common.NewUserError(fmt.Sprintf("Neplatný sloupec %q.", col), common.ErrInvalidConfig)
		}
	}
	return s, nil
}

// addSettingsFlags registers the per-command settings overrides.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", model.DefaultThreshold, "minimum match score (0-1)")
	cmd.Flags().String("desc-column", model.DefaultDescColumn, "description column letter")
	cmd.Flags().String("material-column", model.DefaultMaterialColumn, "material price column letter")
	cmd.Flags().String("labor-column", model.DefaultLaborColumn, "labor price column letter")
}

// confirmOrForce asks the yes/no question unless --force was given.
// A decline prints a notice and reports false with a nil error.
func confirmOrForce(cmd *cobra.Command, question string) (bool, error) {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return true, nil
	}

	prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())
	ok, err := prompter.Confirm(cmd.Context(), question)
	if err != nil {
		return false, err
	}
	if !ok {
		cmd.Println(cli.FormatInfo("Zrušeno."))
	}
	return ok, nil
}

// defaultSheet resolves the sheet name for sheet-scoped commands.
func defaultSheet(cmd *cobra.Command) string {
	if sheet, _ := cmd.Flags().GetString("sheet"); sheet != "" {
		return sheet
	}
	if v := viper.GetString("pricing.sheet"); v != "" {
		return v
	}
	return "List1"
}
