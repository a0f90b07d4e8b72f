// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mzhao/legal-drafter/internal/sections"
	"github.com/mzhao/legal-drafter/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTemplate outputs a human-readable summary of a document template.
func (p *Printer) PrintTemplate(tmpl *types.DocumentTemplate) {
	if tmpl == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category: %s\n", tmpl.Category))
	sb.WriteString("\n")
	for _, field := range tmpl.Fields {
		marker := " "
		if field.Required {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-20s %s\n", marker, field.ID, field.Kind))
	}

	p.printBox(fmt.Sprintf("Template: %s", tmpl.Title), sb.String())
}

// PrintSections outputs the parsed sections of a model response.
func (p *Printer) PrintSections(parsed []types.ParsedSection) {
	if len(parsed) == 0 {
		p.printBox("Response", "no structured content recognized")
		return
	}

	p.printBox(fmt.Sprintf("Response (%d sections)", len(parsed)), sections.Render(parsed))
}
