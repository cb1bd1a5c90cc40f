package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new gtmforge project",
	Long:  `Create gtmforge.config.json with default settings and the output directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}
		color.Green("✅ Project initialized. Edit %s and run 'gtmforge generate'", config.ConfigFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
