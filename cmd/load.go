package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/config"
	"github.com/Metrik-Labs-HQ/gtmforge/internal/loader"
)

var loadProvider string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the emitted dataset into the warehouse",
	Long: `Load the CSV tables of the last generation run into the configured
database. Each raw_* table is dropped and recreated, so a load fully replaces
the previous one.

Examples:
  gtmforge load
  gtmforge load --provider sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if loadProvider != "" {
			cfg.Database.Provider = loadProvider
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		color.Cyan("🚚 Loading dataset from %s into %s warehouse...", cfg.OutputPath, cfg.Database.Provider)

		total, err := loader.New(cfg.Database.Provider, dbURL, cfg.OutputPath).Load(context.Background())
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}

		color.Green("\n✅ Data loading complete! Total rows: %d", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&loadProvider, "provider", "", "database provider (overrides config)")
}
