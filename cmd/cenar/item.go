package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cenar/internal/admin"
	"cenar/internal/cli"
	"cenar/internal/common"
	"cenar/internal/grid"
	"cenar/internal/identity"
	"cenar/internal/model"
)

func itemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Inspect and manage individual catalog items",
	}

	cmd.AddCommand(itemDetailsCmd())
	cmd.AddCommand(itemHistoryCmd())
	cmd.AddCommand(itemAddCmd())
	cmd.AddCommand(itemDeleteCmd())

	return cmd
}

func itemDetailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details [id]",
		Short: "Show one catalog item with its price sources",
		Long: `Details shows one catalog item. Pass either a numeric item ID, or
--cell to resolve the item behind a priced cell from its annotation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveItemID(cmd, args)
			if err != nil {
				return err
			}

			details, err := newBackend().ItemDetails(cmd.Context(), id)
			if err != nil {
				return err
			}

			cmd.Println(cli.RenderBox(details.Name, fmt.Sprintf(
				"ID: %d\nJednotka: %s\nMateriál: %.2f Kč\nMontáž: %.2f Kč",
				details.ID, details.Unit, details.PriceMaterial, details.PriceLabor)))

			if len(details.Sources) > 0 {
				cmd.Println(renderTable(
					[]string{"Datum", "Zdroj", "Materiál", "Montáž"},
					pricePointRows(details.Sources),
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().String("cell", "", "resolve the item from a cell reference, e.g. I5")
	cmd.Flags().String("sheet", "", "sheet name (default from config)")

	return cmd
}

// resolveItemID turns the command input into an item id: a numeric
// argument directly, or a --cell reference through the identity
// resolver (side-table index first, then the cell's annotation).
func resolveItemID(cmd *cobra.Command, args []string) (int64, error) {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid item id %q", args[0])
		}
		return id, nil
	}

	cellRef, _ := cmd.Flags().GetString("cell")
	if cellRef == "" {
		return 0, common.NewUserError("Zadejte ID položky nebo --cell.", common.ErrNoSelection)
	}

	sheet := defaultSheet(cmd)
	cell, err := grid.ParseSelection(sheet, cellRef)
	if err != nil || cell.StartRow != cell.EndRow || cell.StartCol != cell.EndCol {
		return 0, common.NewUserError(fmt.Sprintf("Zadejte jednu buňku, např. I5, ne %q.", cellRef), common.ErrNoSelection)
	}

	g, document, err := openGrid(cmd)
	if err != nil {
		return 0, err
	}
	store := openIndex(cmd)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	resolver := &identity.Resolver{Store: store, Document: document, MirrorSheet: admin.SheetDatabase}
	id, ok, err := resolver.ItemID(cmd.Context(), g, sheet, cell.StartRow, cell.StartCol)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, common.NewUserError(fmt.Sprintf("Buňka %s nenese žádnou identitu položky.", cellRef), common.ErrNoSelection)
	}
	return id, nil
}

func itemHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id|name>",
		Short: "Show an item's price history",
		Long: `History shows the recorded price points of one item. A numeric
argument is treated as an item ID; anything else is searched by name and
the first hit wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := newBackend()

			var name string
			var points []model.PricePoint

			if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
				points, err = backend.ItemHistory(cmd.Context(), id)
				if err != nil {
					return err
				}
				name = args[0]
			} else {
				history, err := backend.HistoryByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				name = history.ItemName
				points = history.History
			}

			if len(points) == 0 {
				cmd.Println(cli.FormatInfo("Žádná cenová historie."))
				return nil
			}

			cmd.Println(cli.PromptStyle.Render(name))
			cmd.Println(renderTable(
				[]string{"Datum", "Zdroj", "Materiál", "Montáž"},
				pricePointRows(points),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func itemAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom item to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			unit, _ := cmd.Flags().GetString("unit")
			material, _ := cmd.Flags().GetFloat64("material")
			labor, _ := cmd.Flags().GetFloat64("labor")

			created, err := newBackend().AddItem(cmd.Context(), model.CatalogItem{
				Name:          name,
				Unit:          unit,
				PriceMaterial: material,
				PriceLabor:    labor,
			})
			if err != nil {
				return err
			}

			if created.ID != nil {
				cmd.Println(cli.FormatSuccess(fmt.Sprintf("Položka %q uložena s ID %d.", created.Name, *created.ID)))
			} else {
				cmd.Println(cli.FormatSuccess(fmt.Sprintf("Položka %q uložena.", created.Name)))
			}
			return nil
		},
	}

	cmd.Flags().String("name", "", "item name (required)")
	cmd.Flags().String("unit", "ks", "unit of measure")
	cmd.Flags().Float64("material", 0, "material price")
	cmd.Flags().Float64("labor", 0, "labor price")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func itemDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			ok, err := confirmOrForce(cmd, fmt.Sprintf("Smazat položku %d?", id))
			if err != nil || !ok {
				return err
			}

			if err := newBackend().DeleteItem(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Položka %d smazána.", id)))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	return cmd
}

func pricePointRows(points []model.PricePoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Date, p.Source,
			fmt.Sprintf("%.2f", p.PriceMaterial),
			fmt.Sprintf("%.2f", p.PriceLabor),
		})
	}
	return rows
}
