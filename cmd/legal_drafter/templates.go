package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mzhao/legal-drafter/internal/observability"
	"github.com/mzhao/legal-drafter/internal/templates"
)

var templatesCategory string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available document templates",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().StringVar(&templatesCategory, "category", "", "Only show templates in this category")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	catalog, err := templates.Default()
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
	}

	list := catalog.All()
	if templatesCategory != "" {
		list = catalog.ByCategory(templatesCategory)
	}
	if len(list) == 0 {
		fmt.Println("No templates found")
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	for _, tmpl := range list {
		printer.PrintTemplate(tmpl)
	}
	return nil
}
