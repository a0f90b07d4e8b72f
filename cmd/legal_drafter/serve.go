package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzhao/legal-drafter/internal/llm"
	"github.com/mzhao/legal-drafter/internal/server"
	"github.com/mzhao/legal-drafter/internal/templates"
	"github.com/mzhao/legal-drafter/internal/workflow"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for the template catalog, editing sessions, generation, analysis, and export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	apiKey := cfg.APIKeyFromEnv()
	if apiKey == "" {
		return fmt.Errorf("an API key is required: set OPENAI_API_KEY or GEMINI_API_KEY, or 'api_key' in the config file")
	}

	catalog, err := templates.Default()
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
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

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Catalog:        catalog,
		Workflow:       workflow.New(client),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
