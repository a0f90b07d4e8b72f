// Package assemble renders a template plus its form data into one linear
// document string. It performs no I/O; output goes to the model prompt or the
// export adapter unchanged.
package assemble

import (
	"fmt"
	"strings"
	"time"

	"github.com/mzhao/legal-drafter/internal/session"
	"github.com/mzhao/legal-drafter/internal/types"
)

// Assemble renders the document for a template and a form snapshot. Fields are
// emitted in declared order; repeatable items keep insertion order and a
// 1-based number prefix. Blank items are emitted as-is: the numbering reflects
// what the user entered, including placeholders they left empty.
func Assemble(tmpl *types.DocumentTemplate, snap session.Snapshot, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(tmpl.Title)
	sb.WriteString("\n\n")

	for _, field := range tmpl.Fields {
		sb.WriteString(field.Label)
		sb.WriteString(":\n")

		if field.Kind == types.KindRepeatable {
			items := snap.Items[field.ID]
			for i, item := range items {
				sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
			}
		} else {
			sb.WriteString(snap.Answers[field.ID])
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Date: ")
	sb.WriteString(now.Format("2006-01-02"))
	sb.WriteString("\n")

	return sb.String()
}
