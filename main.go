package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	driverFlag string
	dsnFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "gudang",
	Short: "Inventory and sales backend",
	Long: `gudang manages categories, suppliers, products, sales and stock adjustments
over a JSON HTTP API, keeping product stock from ever going negative.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Database driver (postgres, mysql or sqlite), overrides DATABASE_DRIVER")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Database DSN, overrides DATABASE_DSN")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
