package handlers

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "careerlens",
	Short: "careerlens generates and serves industry career insights",
	Long: `careerlens augments user career profiles with per-industry insight
records (salary bands, demand level, trending skills, learning resources)
generated by an LLM and normalized into a fixed schema.

Commands:
  serve     start the HTTP API
  generate  run the insight pipeline for one industry and print the result
  migrate   create the database schema`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.careerlens.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewMigrateCmd())
}

// initEnv loads .env for local development before config resolution.
func initEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
