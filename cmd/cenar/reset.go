package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cenar/internal/admin"
	"cenar/internal/cli"
	"cenar/internal/grid"
)

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase the entire backend catalog",
		Long: `Reset deletes every item, price record and learned alias on the
backend. The operation is irreversible and always requires both an
explicit acknowledgment and typing the confirmation word ` + admin.ConfirmPhrase + `.`,
		RunE: runReset,
	}
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())

	// The grid is optional here: without a document the mirrors simply
	// are not cleared afterwards.
	var g grid.Grid
	if gr, _, err := openGrid(cmd); err == nil {
		g = gr
	}

	reset := &admin.Reset{Backend: newBackend(), Grid: g}

	cmd.Println(cli.FormatWarning("Tato operace NEVRATNĚ smaže celou databázi cen, položek i aliasů."))
	accepted, err := prompter.Confirm(ctx, "Opravdu pokračovat?")
	if err != nil {
		return err
	}
	if reset.Acknowledge(accepted) == admin.ResetAborted {
		cmd.Println(cli.FormatInfo("Zrušeno."))
		return nil
	}

	phrase, err := prompter.ReadPhrase(ctx, fmt.Sprintf("Napište %s pro potvrzení", admin.ConfirmPhrase))
	if err != nil {
		return err
	}

	state, err := reset.Confirm(ctx, phrase)
	if err != nil {
		return err
	}
	if state != admin.ResetExecuted {
		cmd.Println(cli.FormatInfo("Zrušeno, databáze zůstala nedotčena."))
		return nil
	}

	if g != nil {
		if err := g.Save(); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
	}

	cmd.Println(cli.FormatSuccess("Databáze byla smazána."))
	return nil
}
