package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/config"
	"github.com/Metrik-Labs-HQ/gtmforge/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the emitted dataset for consistency",
	Long: `Re-read the CSV tables of the last generation run and check headers,
manifest row counts, referential integrity, invoice/payment pairing, monthly
invoice cardinality and SLA flag consistency.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		color.Cyan("🔍 Verifying dataset in %s...", cfg.OutputPath)

		violations, err := verify.Run(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("verification could not run: %w", err)
		}

		if len(violations) > 0 {
			for _, v := range violations {
				color.Red("  ❌ %s", v)
			}
			return fmt.Errorf("dataset has %d consistency violations", len(violations))
		}

		color.Green("✅ Dataset is consistent")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
