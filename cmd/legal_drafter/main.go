// Package main provides the entry point for the legal drafter CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "legal_drafter",
	Short: "Template-driven legal document drafting assistant",
	Long:  "legal_drafter assembles legal documents from declarative templates, polishes them through a chat-completion model, and structures the model's response into titled sections.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
