package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{Use: "wingctl"}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "App config API base URL")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the API")
	rootCmd.PersistentFlags().String("profile", "", "Profile name in config (overrides active)")
	rootCmd.PersistentFlags().String("output", "table", "Output format (table|json)")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLangCmd())
	rootCmd.AddCommand(newTranslationCmd())
	rootCmd.AddCommand(newReleaseCmd())
	rootCmd.AddCommand(newUserCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
