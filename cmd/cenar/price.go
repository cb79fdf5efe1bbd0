package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cenar/internal/cli"
	"cenar/internal/common"
	"cenar/internal/feedback"
	"cenar/internal/grid"
	"cenar/internal/model"
	"cenar/internal/pricing"
)

func priceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a selection of budget rows",
		Long: `Price scans the selection's description column, asks the backend for
material and labor prices in one batch per kind, and writes results back
with confidence highlighting and audit notes.

With --interactive, rows without a material match are revisited one by
one so a candidate can be picked by hand.`,
		RunE: runPrice,
	}

	cmd.Flags().String("selection", "", "cell range to price, e.g. A2:J40 (required)")
	cmd.Flags().String("sheet", "", "sheet name (default from config)")
	cmd.Flags().String("dedupe", "by-description", "lookup strategy: by-description or by-row")
	cmd.Flags().Bool("interactive", false, "manually resolve rows without a material match")
	cmd.Flags().Bool("reindex", false, "drop the sheet's local identity index before pricing")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	addSettingsFlags(cmd)
	_ = cmd.MarkFlagRequired("selection")

	return cmd
}

func runPrice(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	selRef, _ := cmd.Flags().GetString("selection")
	sel, err := grid.ParseSelection(defaultSheet(cmd), selRef)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Neplatný rozsah %q.", selRef), err)
	}

	dedupeFlag, _ := cmd.Flags().GetString("dedupe")
	var dedupe pricing.DedupePolicy
	switch dedupeFlag {
	case "by-description", "description":
		dedupe = pricing.KeyByDescription
	case "by-row", "rows":
		dedupe = pricing.KeyByRow
	default:
		return common.NewUserError(fmt.Sprintf("Neznámá strategie %q.", dedupeFlag), common.ErrInvalidConfig)
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

	if reindex, _ := cmd.Flags().GetBool("reindex"); reindex && store != nil {
		// The index is rebuildable: annotations in the document stay the
		// authoritative identity source.
		if err := store.ForgetSheet(cmd.Context(), document, sel.Sheet); err != nil {
			return fmt.Errorf("failed to drop sheet index: %w", err)
		}
	}

	handler := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx := handler.HandleInterrupts(cmd.Context())

	engine := &pricing.Engine{
		Backend:  backend,
		Grid:     g,
		Learner:  feedback.NewLearner(backend, nil),
		Store:    store,
		Document: document,
	}

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	summary, err := engine.PriceSelection(ctx, sel, settings, pricing.Options{
		Dedupe:       dedupe,
		ShowProgress: !noProgress,
	})
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive && len(summary.Unmatched) > 0 {
		if err := resolveUnmatched(cmd, engine, settings, sel.Sheet, summary); err != nil {
			return err
		}
	}

	if err := g.Save(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf(
		"Oceněno %d řádků: %d × materiál, %d × montáž, %d bez shody.",
		summary.Scanned, summary.MatchedMaterial, summary.MatchedLabor, len(summary.Unmatched))))
	return nil
}

// resolveUnmatched walks the rows the batch pass could not price and
// lets the user pick among backend candidates. Cancelling one row moves
// on to the next; a cancelled input stream ends the walk.
func resolveUnmatched(cmd *cobra.Command, engine *pricing.Engine, settings model.Settings, sheet string, summary *pricing.Summary) error {
	ctx := cmd.Context()
	prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())

	materialCol, err := grid.ColumnIndex(settings.MaterialColumn)
	if err != nil {
		return err
	}

	for _, row := range summary.Unmatched {
		cc, err := engine.Candidates(ctx, sheet, row.Row, materialCol, settings)
		if err != nil {
			return err
		}
		if len(cc.Candidates) == 0 {
			cmd.Println(cli.FormatInfo(fmt.Sprintf("Řádek %d (%s): žádné alternativy.", row.Row, row.Description)))
			continue
		}

		chosen, err := prompter.PickCandidate(ctx, cc.Description, cc.Kind, cc.Candidates)
		if errors.Is(err, common.ErrNoSelection) {
			continue
		}
		if errors.Is(err, cli.ErrInputCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := engine.ApplyCandidate(ctx, cc, chosen); err != nil {
			return err
		}
		summary.MatchedMaterial++
		cmd.Println(cli.FormatSuccess(fmt.Sprintf("Řádek %d: %s", row.Row, chosen.Item)))
	}
	return nil
}
