package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cenar/internal/annotate"
	"cenar/internal/cli"
	"cenar/internal/grid"
	"cenar/internal/model"
)

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <material name>",
		Short: "Suggest labor items for a material",
		Long: `Suggest asks the backend which labor items usually accompany the
given material. With --insert-after, the picked suggestion is written
into a freshly inserted row below the given one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSuggest,
	}

	cmd.Flags().Int("insert-after", 0, "insert the picked suggestion as a new row after this row")
	cmd.Flags().String("sheet", "", "sheet name (default from config)")
	addSettingsFlags(cmd)

	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	material := strings.Join(args, " ")

	suggestions, err := newBackend().LaborSuggestions(cmd.Context(), material)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		cmd.Println(cli.FormatInfo(fmt.Sprintf("Žádné montážní návrhy pro %q.", material)))
		return nil
	}

	insertAfter, _ := cmd.Flags().GetInt("insert-after")
	if insertAfter == 0 {
		rows := make([][]string, 0, len(suggestions))
		for _, s := range suggestions {
			rows = append(rows, []string{
				strconv.FormatInt(s.ID, 10), s.Name, fmt.Sprintf("%.2f", s.PriceLabor),
			})
		}
		cmd.Println(renderTable(
			[]string{"ID", "Montážní položka", "Cena"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight},
		))
		return nil
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	descCol, err := grid.ColumnIndex(settings.DescColumn)
	if err != nil {
		return err
	}
	laborCol, err := grid.ColumnIndex(settings.LaborColumn)
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())
	chosen, err := pickSuggestion(cmd, prompter, material, suggestions)
	if err != nil {
		return err
	}

	g, _, err := openGrid(cmd)
	if err != nil {
		return err
	}

	sheet := defaultSheet(cmd)
	if err := g.InsertRowAfter(sheet, insertAfter); err != nil {
		return err
	}

	row := insertAfter + 1
	if err := g.SetValue(sheet, row, descCol, chosen.Name); err != nil {
		return err
	}
	if err := g.SetValue(sheet, row, laborCol, chosen.PriceLabor); err != nil {
		return err
	}
	note := annotate.LaborInsertNote(chosen.ID, time.Now().Format("2006-01-02"))
	if err := g.SetNote(sheet, row, laborCol, note); err != nil {
		return err
	}

	if err := g.Save(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Vložen řádek %d: %s (%.2f Kč).", row, chosen.Name, chosen.PriceLabor)))
	return nil
}

// pickSuggestion funnels labor suggestions through the shared candidate
// picker.
func pickSuggestion(cmd *cobra.Command, prompter *cli.Prompter, material string, suggestions []model.LaborSuggestion) (model.LaborSuggestion, error) {
	candidates := make([]model.Candidate, 0, len(suggestions))
	for _, s := range suggestions {
		candidates = append(candidates, model.Candidate{Item: s.Name, ID: s.ID, PriceLabor: s.PriceLabor})
	}

	chosen, err := prompter.PickCandidate(cmd.Context(), material, model.KindLabor, candidates)
	if err != nil {
		return model.LaborSuggestion{}, err
	}

	for _, s := range suggestions {
		if s.ID == chosen.ID {
			return s, nil
		}
	}
	return model.LaborSuggestion{Name: chosen.Item, ID: chosen.ID, PriceLabor: chosen.PriceLabor}, nil
}
