package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mzhao/legal-drafter/internal/assemble"
	"github.com/mzhao/legal-drafter/internal/export"
	"github.com/mzhao/legal-drafter/internal/llm"
	"github.com/mzhao/legal-drafter/internal/observability"
	"github.com/mzhao/legal-drafter/internal/session"
	"github.com/mzhao/legal-drafter/internal/templates"
	"github.com/mzhao/legal-drafter/internal/types"
	"github.com/mzhao/legal-drafter/internal/workflow"
)

var (
	generateTemplate string
	generateAnswers  string
	generateOut      string
	generateDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a document from a template and an answers file",
	Long: `Generate assembles a document from a template and a JSON answers file,
asks the model to polish it, and prints the structured response.

The answers file maps field ids to values: a string for scalar fields, an
array of strings for repeatable fields.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "Template id (required)")
	generateCmd.Flags().StringVar(&generateAnswers, "answers", "", "Path to JSON answers file (required)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Write the polished document to this file")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Only assemble and print the draft, without calling the model")
	_ = generateCmd.MarkFlagRequired("template")
	_ = generateCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	catalog, err := templates.Default()
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
	}

	tmpl := catalog.ByID(generateTemplate)
	if tmpl == nil {
		return fmt.Errorf("unknown template: %s", generateTemplate)
	}

	sess, err := loadAnswers(tmpl)
	if err != nil {
		return err
	}

	if generateDryRun {
		fmt.Print(assemble.Assemble(tmpl, sess.Snapshot(), time.Now()))
		return nil
	}

	if !sess.IsComplete() {
		return fmt.Errorf("form is incomplete: every required field needs a non-blank answer")
	}

	cfg, err := loadMergedConfig()
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

	result, err := workflow.New(client).GenerateDocument(context.Background(), sess)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintSections(result.Sections)

	if generateOut != "" {
		artifact := export.AsText(result.Raw, tmpl.Title)
		if err := os.WriteFile(generateOut, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Wrote %s\n", generateOut)
	}

	return nil
}

// loadAnswers builds a session from the answers file for the given template.
func loadAnswers(tmpl *types.DocumentTemplate) (*session.Session, error) {
	data, err := os.ReadFile(generateAnswers)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse answers JSON: %w", err)
	}

	sess := session.New()
	sess.SelectTemplate(tmpl)

	for fieldID, value := range raw {
		var scalar string
		if err := json.Unmarshal(value, &scalar); err == nil {
			if err := sess.SetFieldValue(fieldID, scalar); err != nil {
				return nil, fmt.Errorf("answers file: %w", err)
			}
			continue
		}

		var items []string
		if err := json.Unmarshal(value, &items); err != nil {
			return nil, fmt.Errorf("answers file: field %q must be a string or an array of strings", fieldID)
		}
		for i, item := range items {
			if err := sess.AddRepeatableItem(fieldID); err != nil {
				return nil, fmt.Errorf("answers file: %w", err)
			}
			if err := sess.UpdateRepeatableItem(fieldID, i, item); err != nil {
				return nil, fmt.Errorf("answers file: %w", err)
			}
		}
	}

	return sess, nil
}
