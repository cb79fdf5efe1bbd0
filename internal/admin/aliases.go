package admin

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"cenar/internal/common"
	"cenar/internal/grid"
	"cenar/internal/pricebook"
)

// aliasHeader is row 1 of the alias mirror.
var aliasHeader = []string{
	"ID Aliasu", "ID Položky", "Hledaný výraz (Alias)", "Cílová položka v DB",
}

// AliasBook manages the ADMIN_ALIASY sheet.
type AliasBook struct {
	Backend pricebook.Service
	Grid    grid.Grid
	Logger  *slog.Logger
}

func (a *AliasBook) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Load replaces the alias sheet with the backend's learned aliases.
func (a *AliasBook) Load(ctx context.Context) (int, error) {
	aliases, err := a.Backend.Aliases(ctx)
	if err != nil {
		return 0, err
	}

	if err := a.Grid.EnsureSheet(SheetAliases); err != nil {
		return 0, err
	}
	if err := a.Grid.ClearSheet(SheetAliases); err != nil {
		return 0, err
	}

	for col, h := range aliasHeader {
		if err := a.Grid.SetValue(SheetAliases, 1, col+1, h); err != nil {
			return 0, err
		}
	}

	for i, al := range aliases {
		row := i + 2
		cells := []any{al.ID, al.ItemID, al.Query, al.ItemName}
		for col, v := range cells {
			if err := a.Grid.SetValue(SheetAliases, row, col+1, v); err != nil {
				return 0, err
			}
		}
	}

	a.logger().Info("aliases loaded", "count", len(aliases))
	return len(aliases), nil
}

// ForgetSelected deletes the aliases on the given rows from the backend
// and removes the rows. Alias IDs are read once before any removal.
func (a *AliasBook) ForgetSelected(ctx context.Context, rows []int) (int, error) {
	if !a.Grid.HasSheet(SheetAliases) {
		return 0, common.NewUserError("Sheet ADMIN_ALIASY neexistuje. Nejprve načtěte aliasy.", common.ErrMirrorNotLoaded)
	}

	var ids []int64
	var rowSet []int
	seen := map[int]bool{}
	for _, row := range rows {
		if row < 2 || seen[row] {
			continue
		}
		seen[row] = true

		v, err := a.Grid.Value(SheetAliases, row, 1)
		if err != nil {
			return 0, err
		}
		id, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if perr != nil {
			continue
		}
		ids = append(ids, id)
		rowSet = append(rowSet, row)
	}

	if len(ids) == 0 {
		return 0, common.NewUserError("Vybrané řádky neobsahují žádné aliasy.", common.ErrNoSelection)
	}

	if err := a.Backend.AliasBatchDelete(ctx, ids); err != nil {
		return 0, err
	}

	if err := deleteRowsBottomUp(a.Grid, SheetAliases, rowSet); err != nil {
		return len(ids), err
	}

	a.logger().Info("aliases forgotten", "count", len(ids))
	return len(ids), nil
}
