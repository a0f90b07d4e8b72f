package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzhao/legal-drafter/internal/types"
)

func TestLoad_AllTemplatesValid(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, catalog.All())

	for _, tmpl := range catalog.All() {
		assert.NotEmpty(t, tmpl.ID)
		assert.NotEmpty(t, tmpl.Title)
		assert.NotEmpty(t, tmpl.Category)
		assert.NotEmpty(t, tmpl.Fields)

		seen := make(map[string]bool)
		for _, field := range tmpl.Fields {
			assert.True(t, field.Kind.Valid(), "field %s of %s has kind %s", field.ID, tmpl.ID, field.Kind)
			assert.False(t, seen[field.ID], "duplicate field id %s in %s", field.ID, tmpl.ID)
			seen[field.ID] = true
			if field.Kind == types.KindChoice {
				assert.NotEmpty(t, field.Options, "choice field %s of %s has no options", field.ID, tmpl.ID)
			}
		}
	}
}

func TestByID(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	tmpl := catalog.ByID("civil-complaint")
	require.NotNil(t, tmpl)
	assert.Equal(t, "Civil Complaint", tmpl.Title)
	assert.Equal(t, "litigation", tmpl.Category)

	claims := tmpl.Field("claims")
	require.NotNil(t, claims)
	assert.Equal(t, types.KindRepeatable, claims.Kind)
	assert.True(t, claims.Required)

	assert.Nil(t, catalog.ByID("no-such-template"))
}

func TestByCategory(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	litigation := catalog.ByCategory("litigation")
	require.NotEmpty(t, litigation)
	for _, tmpl := range litigation {
		assert.Equal(t, "litigation", tmpl.Category)
	}

	assert.Empty(t, catalog.ByCategory("no-such-category"))
}

func TestCategories(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	categories := catalog.Categories()
	assert.Contains(t, categories, "litigation")
	assert.Contains(t, categories, "contracts")

	seen := make(map[string]bool)
	for _, c := range categories {
		assert.False(t, seen[c], "category %s listed twice", c)
		seen[c] = true
	}
}

func TestDefault_Memoizes(t *testing.T) {
	first, err := Default()
	require.NoError(t, err)

	second, err := Default()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
