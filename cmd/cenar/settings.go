package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cenar/internal/cli"
	"cenar/internal/common"
	"cenar/internal/config"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change pricing settings",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective pricing settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := config.LoadSettings()

			rows := [][]string{
				{"Práh shody", strconv.FormatFloat(s.Threshold, 'f', -1, 64)},
				{"Sloupec popisů", s.DescColumn},
				{"Sloupec materiálu", s.MaterialColumn},
				{"Sloupec montáže", s.LaborColumn},
				{"Backend", config.BackendURL()},
			}
			cmd.Println(renderTable([]string{"Nastavení", "Hodnota"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}

func settingsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist pricing settings to the config file",
		RunE:  runSettingsSet,
	}

	cmd.Flags().Float64("threshold", -1, "minimum match score (0-1)")
	cmd.Flags().String("desc-column", "", "description column letter")
	cmd.Flags().String("material-column", "", "material price column letter")
	cmd.Flags().String("labor-column", "", "labor price column letter")

	return cmd
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	changed := false

	// Values are stored as given; they are validated when an operation
	// resolves its settings, not here.
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		viper.Set("pricing.threshold", threshold)
		changed = true
	}

	for flag, key := range map[string]string{
		"desc-column":     "pricing.desc_column",
		"material-column": "pricing.material_column",
		"labor-column":    "pricing.labor_column",
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		col, _ := cmd.Flags().GetString(flag)
		viper.Set(key, col)
		changed = true
	}

	if !changed {
		return common.NewUserError("Žádná změna: zadejte alespoň jeden přepínač.", common.ErrInvalidConfig)
	}

	if err := viper.WriteConfig(); err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return fmt.Errorf("failed to get home directory: %w", herr)
		}
		dir := filepath.Join(home, ".config", "cenar")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := viper.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	cmd.Println(cli.FormatSuccess("Nastavení uloženo."))
	return nil
}
