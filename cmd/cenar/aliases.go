package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cenar/internal/admin"
	"cenar/internal/cli"
)

func aliasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Inspect and forget learned aliases",
	}

	cmd.AddCommand(aliasesListCmd())
	cmd.AddCommand(aliasesLoadCmd())
	cmd.AddCommand(aliasesForgetCmd())

	return cmd
}

func aliasesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learned aliases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			aliases, err := newBackend().Aliases(cmd.Context())
			if err != nil {
				return err
			}
			if len(aliases) == 0 {
				cmd.Println(cli.FormatInfo("Žádné naučené aliasy."))
				return nil
			}

			rows := make([][]string, 0, len(aliases))
			for _, a := range aliases {
				rows = append(rows, []string{
					strconv.FormatInt(a.ID, 10), a.Query, a.ItemName, strconv.FormatInt(a.ItemID, 10),
				})
			}
			cmd.Println(renderTable(
				[]string{"ID", "Alias", "Položka", "ID položky"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func aliasesLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Write the aliases into the " + admin.SheetAliases + " sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, _, err := openGrid(cmd)
			if err != nil {
				return err
			}

			book := &admin.AliasBook{Backend: newBackend(), Grid: g}
			count, err := book.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := g.Save(); err != nil {
				return fmt.Errorf("failed to save document: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Načteno %d aliasů do %s.", count, admin.SheetAliases)))
			return nil
		},
	}
}

func aliasesForgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget",
		Short: "Delete aliases listed on the given mirror rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rowsFlag, _ := cmd.Flags().GetString("rows")
			rows, err := parseRowList(rowsFlag)
			if err != nil {
				return err
			}

			g, _, err := openGrid(cmd)
			if err != nil {
				return err
			}

			book := &admin.AliasBook{Backend: newBackend(), Grid: g}
			count, err := book.ForgetSelected(cmd.Context(), rows)
			if err != nil {
				return err
			}
			if err := g.Save(); err != nil {
				return fmt.Errorf("failed to save document: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Zapomenuto %d aliasů.", count)))
			return nil
		},
	}

	cmd.Flags().String("rows", "", "comma-separated alias mirror rows (required)")
	_ = cmd.MarkFlagRequired("rows")

	return cmd
}
