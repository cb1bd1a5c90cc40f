package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.3.0"
)

func showBanner() {
	green := color.New(color.FgGreen, color.Bold)
	green.Println("  ⚒  gtmforge: deterministic SaaS GTM dataset toolkit")
	fmt.Print("     ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "gtmforge",
	Short: "Generate, load and verify a synthetic SaaS go-to-market dataset",
	Long: `
gtmforge fabricates a self-consistent B2B SaaS business universe (accounts,
users, subscriptions, invoices, payments, CRM deals, product events, support
tickets and marketing spend), reproducible bit-for-bit from a fixed seed, and
bulk-loads the resulting CSV tables into an analytics warehouse.

Database support:
- PostgreSQL (COPY-based bulk load)
- MySQL
- SQLite (embedded)`,

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./gtmforge.config.json)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("gtmforge.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
