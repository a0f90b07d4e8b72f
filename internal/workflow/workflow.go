// Package workflow provides the high-level orchestration for document
// generation and analysis: assemble or extract the input text, send it to the
// chat-completion collaborator, and parse the response into sections.
package workflow

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mzhao/legal-drafter/internal/assemble"
	"github.com/mzhao/legal-drafter/internal/llm"
	"github.com/mzhao/legal-drafter/internal/prompts"
	"github.com/mzhao/legal-drafter/internal/sections"
	"github.com/mzhao/legal-drafter/internal/session"
	"github.com/mzhao/legal-drafter/internal/types"
)

// Result is the outcome of one generation or analysis request.
type Result struct {
	// Raw is the unmodified completion text.
	Raw string `json:"raw"`
	// Sections is the structured view of Raw. It may be empty when the model
	// ignored the section convention; that is not an error.
	Sections []types.ParsedSection `json:"sections"`
	// Document is the assembled input document (generation only).
	Document string `json:"document,omitempty"`
}

// Workflow coordinates the pipeline around one chat-completion client. A
// single request may be in flight at a time; a second request is rejected
// rather than queued, mirroring the disabled trigger in the UI.
type Workflow struct {
	client llm.Client
	now    func() time.Time

	mu       sync.Mutex
	inFlight bool
}

// New creates a workflow around a chat-completion client.
func New(client llm.Client) *Workflow {
	return &Workflow{
		client: client,
		now:    time.Now,
	}
}

// GenerateDocument assembles the session's form data into a draft, asks the
// model to polish it, and parses the response into sections. The session must
// be complete; callers gate on IsComplete before invoking.
func (w *Workflow) GenerateDocument(ctx context.Context, sess *session.Session) (*Result, error) {
	tmpl := sess.Template()
	if tmpl == nil {
		return nil, ErrNoTemplate
	}
	if !sess.IsComplete() {
		return nil, &IncompleteFormError{TemplateID: tmpl.ID}
	}

	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	document := assemble.Assemble(tmpl, sess.Snapshot(), w.now())

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("generation.json", "system")},
		{Role: llm.RoleUser, Content: prompts.Format(
			prompts.MustGet("generation.json", "draft"),
			map[string]string{
				"DocumentKind": tmpl.Title,
				"Document":     document,
			},
		)},
	}

	raw, err := w.client.Generate(ctx, messages)
	if err != nil {
		log.Printf("[workflow] generation request failed: %v", err)
		return nil, &CompletionError{Cause: err}
	}

	return &Result{
		Raw:      raw,
		Sections: sections.Parse(raw),
		Document: document,
	}, nil
}

// AnalyzeText asks the model to review extracted document text and parses the
// findings into sections.
func (w *Workflow) AnalyzeText(ctx context.Context, text string) (*Result, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("generation.json", "analyze-system")},
		{Role: llm.RoleUser, Content: prompts.Format(
			prompts.MustGet("generation.json", "analyze"),
			map[string]string{"Document": text},
		)},
	}

	raw, err := w.client.Generate(ctx, messages)
	if err != nil {
		log.Printf("[workflow] analysis request failed: %v", err)
		return nil, &CompletionError{Cause: err}
	}

	return &Result{
		Raw:      raw,
		Sections: sections.Parse(raw),
	}, nil
}

// acquire claims the single in-flight slot.
func (w *Workflow) acquire() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrRequestInFlight
	}
	w.inFlight = true
	return nil
}

// release frees the in-flight slot. Always runs, on success and on failure,
// so a failed request never wedges the workflow.
func (w *Workflow) release() {
	w.mu.Lock()
	w.inFlight = false
	w.mu.Unlock()
}
