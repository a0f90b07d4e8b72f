package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mzhao/legal-drafter/internal/extract"
	"github.com/mzhao/legal-drafter/internal/llm"
	"github.com/mzhao/legal-drafter/internal/observability"
	"github.com/mzhao/legal-drafter/internal/workflow"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a document file and print the structured findings",
	Long:  `Analyze extracts the text of a .txt, .md, or .pdf file, asks the model to review it, and prints the findings as titled sections.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	text, err := extract.ExtractText(args[0], data, cfg.MaxUploadBytes)
	if err != nil {
		return err
	}

	apiKey := cfg.APIKeyFromEnv()
	if apiKey == "" {
		return fmt.Errorf("an API key is required: set OPENAI_API_KEY or GEMINI_API_KEY, or 'api_key' in the config file")
	}

	client, err := llm.NewClient(context.Background(), llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.Model,
		APIKey:   apiKey,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := workflow.New(client).AnalyzeText(context.Background(), text)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintSections(result.Sections)
	return nil
}
