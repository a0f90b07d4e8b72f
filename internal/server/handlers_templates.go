package server

import (
	"net/http"

	"github.com/mzhao/legal-drafter/internal/types"
)

// TemplateSummary is the list view of a template without its fields.
type TemplateSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Fields   int    `json:"fields"`
}

// handleListTemplates returns the template catalog, optionally filtered by
// the category query parameter.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var all []*types.DocumentTemplate
	if category := r.URL.Query().Get("category"); category != "" {
		all = s.catalog.ByCategory(category)
	} else {
		all = s.catalog.All()
	}

	summaries := make([]TemplateSummary, 0, len(all))
	for _, tmpl := range all {
		summaries = append(summaries, TemplateSummary{
			ID:       tmpl.ID,
			Title:    tmpl.Title,
			Category: tmpl.Category,
			Fields:   len(tmpl.Fields),
		})
	}

	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetTemplate returns one template with its full field list.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl := s.catalog.ByID(r.PathValue("id"))
	if tmpl == nil {
		s.errorResponse(w, http.StatusNotFound, "Template not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}
