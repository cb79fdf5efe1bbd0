package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cenar/internal/cli"
	"cenar/internal/config"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the pricing backend",
		RunE:  runStatus,
	}

	cmd.Flags().Int("operations", 0, "also show the last N local operations")

	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	status := newBackend().Status(cmd.Context())

	if status.Status == "offline" {
		cmd.Println(cli.FormatError(fmt.Sprintf(
			"Backend %s je offline.", config.BackendURL())))
	} else {
		cmd.Println(cli.FormatSuccess(fmt.Sprintf(
			"Backend %s je online (%d položek).", config.BackendURL(), status.ItemCount)))
	}

	limit, _ := cmd.Flags().GetInt("operations")
	if limit <= 0 {
		return nil
	}

	store := openIndex(cmd)
	if store == nil {
		cmd.Println(cli.FormatWarning("Lokální index není dostupný."))
		return nil
	}
	defer func() { _ = store.Close() }()

	ops, err := store.RecentOperations(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		cmd.Println(cli.FormatInfo("Žádné zaznamenané operace."))
		return nil
	}

	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, []string{
			op.StartedAt.Format("2006-01-02 15:04"),
			op.Kind,
			strconv.Itoa(op.Rows),
			strconv.Itoa(op.Matched),
		})
	}
	cmd.Println(renderTable(
		[]string{"Čas", "Operace", "Řádků", "Shod"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	))
	return nil
}
