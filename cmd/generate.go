package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/config"
	"github.com/Metrik-Labs-HQ/gtmforge/internal/datagen"
	"github.com/Metrik-Labs-HQ/gtmforge/internal/emit"
)

var (
	genSeed     int64
	genAccounts int
	genOut      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic dataset",
	Long: `Run one deterministic generation batch and emit the nine CSV tables
plus a manifest into the output directory, replacing any previous run.

Examples:
  gtmforge generate
  gtmforge generate --seed 7 --accounts 1000
  gtmforge generate --out /tmp/dataset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("seed") {
			cfg.Seed = genSeed
		}
		if cmd.Flags().Changed("accounts") {
			cfg.Accounts = genAccounts
		}
		if genOut != "" {
			cfg.OutputPath = genOut
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		params, err := cfg.Params()
		if err != nil {
			return err
		}

		color.Cyan("🌱 Generating synthetic SaaS GTM data (seed %d, %d accounts)...", params.Seed, params.Accounts)

		generator, err := datagen.New(params)
		if err != nil {
			return err
		}
		ds, err := generator.Generate()
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		manifest, err := emit.NewWriter(cfg.OutputPath).Write(ds, params)
		if err != nil {
			return fmt.Errorf("failed to emit dataset: %w", err)
		}

		fmt.Println()
		total := 0
		for _, t := range manifest.Tables {
			color.Green("  ✅ %-16s %8d rows → %s", t.Name, t.Rows, t.File)
			total += t.Rows
		}
		fmt.Println()
		color.Green("✅ Dataset written to %s (%d rows total)", cfg.OutputPath, total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "random seed for the batch")
	generateCmd.Flags().IntVar(&genAccounts, "accounts", 500, "number of accounts to generate")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output directory (overrides config)")
}
