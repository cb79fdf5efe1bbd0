package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cenar/internal/cli"
	"cenar/internal/common"
	"cenar/internal/feedback"
	"cenar/internal/grid"
	"cenar/internal/pricing"
)

func pickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick <cell>",
		Short: "Manually pick a price for one cell",
		Long: `Pick fetches match candidates for a single price cell, e.g. "I5",
and writes the chosen one with full confidence. The choice also teaches
the backend a new alias for the row's description.`,
		Args: cobra.ExactArgs(1),
		RunE: runPick,
	}

	cmd.Flags().String("sheet", "", "sheet name (default from config)")
	addSettingsFlags(cmd)

	return cmd
}

func runPick(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	sheet := defaultSheet(cmd)
	cell, err := grid.ParseSelection(sheet, args[0])
	if err != nil || cell.StartRow != cell.EndRow || cell.StartCol != cell.EndCol {
		return common.NewUserError(fmt.Sprintf("Zadejte jednu buňku, např. I5, ne %q.", args[0]), common.ErrNoSelection)
	}

	g, document, err := openGrid(cmd)
	if err != nil {
		return err
	}

	backend := newBackend()
	store := openIndex(cmd)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	engine := &pricing.Engine{
		Backend:  backend,
		Grid:     g,
		Learner:  feedback.NewLearner(backend, nil),
		Store:    store,
		Document: document,
	}

	cc, err := engine.Candidates(cmd.Context(), sheet, cell.StartRow, cell.StartCol, settings)
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())
	chosen, err := prompter.PickCandidate(cmd.Context(), cc.Description, cc.Kind, cc.Candidates)
	if err != nil {
		return err
	}

	if err := engine.ApplyCandidate(cmd.Context(), cc, chosen); err != nil {
		return err
	}
	if err := g.Save(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("%s: %s (%.2f Kč)", args[0], chosen.Item, chosen.Price(cc.Kind))))
	return nil
}
