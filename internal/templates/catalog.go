// Package templates provides the read-only catalog of document templates.
// Templates are declarative JSON files embedded at compile time; adding a
// document type is adding a file, with no engine changes.
package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/mzhao/legal-drafter/internal/schemas"
	"github.com/mzhao/legal-drafter/internal/types"
)

//go:embed *.json
var templateFiles embed.FS

//go:embed template.schema.json
var templateSchema []byte

// Catalog is the immutable set of available document templates.
type Catalog struct {
	byID  map[string]*types.DocumentTemplate
	order []string
}

var (
	defaultCatalog *Catalog
	defaultErr     error
	loadOnce       sync.Once
)

// Default returns the process-wide catalog, loading it on first use.
func Default() (*Catalog, error) {
	loadOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	return defaultCatalog, defaultErr
}

// Load parses and validates every embedded template file.
// Returns an error if any file fails schema validation or reuses an id.
func Load() (*Catalog, error) {
	entries, err := templateFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates: %w", err)
	}

	c := &Catalog{byID: make(map[string]*types.DocumentTemplate)}

	var names []string
	for _, entry := range entries {
		if entry.Name() == "template.schema.json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := templateFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file %s: %w", name, err)
		}

		if err := schemas.ValidateDocument(templateSchema, data); err != nil {
			return nil, fmt.Errorf("template file %s is invalid: %w", name, err)
		}

		var tmpl types.DocumentTemplate
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("failed to parse template file %s: %w", name, err)
		}

		if err := checkFields(&tmpl); err != nil {
			return nil, fmt.Errorf("template file %s is invalid: %w", name, err)
		}

		if _, exists := c.byID[tmpl.ID]; exists {
			return nil, fmt.Errorf("duplicate template id %q in %s", tmpl.ID, name)
		}
		c.byID[tmpl.ID] = &tmpl
		c.order = append(c.order, tmpl.ID)
	}

	return c, nil
}

// checkFields enforces the structural rules the JSON Schema cannot express.
func checkFields(tmpl *types.DocumentTemplate) error {
	seen := make(map[string]bool, len(tmpl.Fields))
	for _, f := range tmpl.Fields {
		if !f.Kind.Valid() {
			return fmt.Errorf("field %q has unknown kind %q", f.ID, f.Kind)
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate field id %q", f.ID)
		}
		seen[f.ID] = true
		if f.Kind == types.KindChoice && len(f.Options) == 0 {
			return fmt.Errorf("choice field %q has no options", f.ID)
		}
	}
	return nil
}

// All returns every template in catalog order.
func (c *Catalog) All() []*types.DocumentTemplate {
	out := make([]*types.DocumentTemplate, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByID returns the template with the given id, or nil if not found.
func (c *Catalog) ByID(id string) *types.DocumentTemplate {
	return c.byID[id]
}

// ByCategory returns all templates in the given category, in catalog order.
func (c *Catalog) ByCategory(category string) []*types.DocumentTemplate {
	var out []*types.DocumentTemplate
	for _, id := range c.order {
		if c.byID[id].Category == category {
			out = append(out, c.byID[id])
		}
	}
	return out
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range c.order {
		cat := c.byID[id].Category
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}
