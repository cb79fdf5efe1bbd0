package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cenar/internal/admin"
	"cenar/internal/cli"
	"cenar/internal/common"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the editable catalog mirror",
		Long: `Admin maintains the ` + admin.SheetDatabase + ` sheet: a bulk-editable
copy of the backend catalog. Load it, edit prices and names in place,
then sync the whole sheet back in one batch.`,
	}

	cmd.AddCommand(adminLoadCmd())
	cmd.AddCommand(adminSyncCmd())
	cmd.AddCommand(adminDeleteCmd())

	return cmd
}

func adminLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Replace the mirror sheet with the backend catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, _, err := openGrid(cmd)
			if err != nil {
				return err
			}

			mirror := &admin.Mirror{Backend: newBackend(), Grid: g}
			count, err := mirror.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := g.Save(); err != nil {
				return fmt.Errorf("failed to save document: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Načteno %d položek do %s.", count, admin.SheetDatabase)))
			return nil
		},
	}
}

func adminSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push the whole mirror sheet back to the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, _, err := openGrid(cmd)
			if err != nil {
				return err
			}

			ok, err := confirmOrForce(cmd, "Synchronizovat celý sheet do databáze?")
			if err != nil || !ok {
				return err
			}

			mirror := &admin.Mirror{Backend: newBackend(), Grid: g}
			count, err := mirror.Sync(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Synchronizováno %d položek.", count)))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	return cmd
}

func adminDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete mirror rows and their backend items",
		RunE:  runAdminDelete,
	}

	cmd.Flags().String("rows", "", "comma-separated mirror row numbers, e.g. 2,5,7 (required)")
	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	_ = cmd.MarkFlagRequired("rows")

	return cmd
}

func runAdminDelete(cmd *cobra.Command, _ []string) error {
	rowsFlag, _ := cmd.Flags().GetString("rows")
	rows, err := parseRowList(rowsFlag)
	if err != nil {
		return err
	}

	g, _, err := openGrid(cmd)
	if err != nil {
		return err
	}

	ok, err := confirmOrForce(cmd, fmt.Sprintf("Smazat %d řádků včetně položek na backendu?", len(rows)))
	if err != nil || !ok {
		return err
	}

	mirror := &admin.Mirror{Backend: newBackend(), Grid: g}
	count, err := mirror.DeleteSelected(cmd.Context(), rows)
	if err != nil {
		return err
	}
	if err := g.Save(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Smazáno %d řádků, %d položek na backendu.", len(rows), count)))
	return nil
}

func parseRowList(s string) ([]int, error) {
	var rows []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, common.NewUserError(fmt.Sprintf("Neplatné číslo řádku %q.", part), common.ErrNoSelection)
		}
		rows = append(rows, n)
	}
	if len(rows) == 0 {
		return nil, common.NewUserError("Zadejte alespoň jeden řádek.", common.ErrNoSelection)
	}
	return rows, nil
}
