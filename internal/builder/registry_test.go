package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookupUnknownType(t *testing.T) {
	r := DefaultRegistry()

	assert.Nil(t, r.Lookup("legacy_widget"))
	assert.False(t, r.Has("legacy_widget"))

	_, ok := r.NewBlock("legacy_widget")
	assert.False(t, ok)
}

func TestRegistryRegisterOverrides(t *testing.T) {
	r := NewRegistry()
	r.Register(BlockDefinition{Type: "hero", Label: "Hero"})
	r.Register(BlockDefinition{Type: "hero", Label: "Hero v2"})

	require.Len(t, r.Definitions(), 1)
	assert.Equal(t, "Hero v2", r.Lookup("hero").Label)
}

func TestRegistryNewBlockClonesDefaults(t *testing.T) {
	r := DefaultRegistry()

	a, ok := r.NewBlock("hero")
	require.True(t, ok)
	b, ok := r.NewBlock("hero")
	require.True(t, ok)

	assert.NotEqual(t, a.ID, b.ID)

	// Each instance owns its props.
	a.Props["title"] = "changed"
	assert.NotEqual(t, "changed", b.Props["title"])
	assert.NotEqual(t, "changed", r.Lookup("hero").DefaultProps["title"])
}

func TestDefaultRegistryCatalog(t *testing.T) {
	r := DefaultRegistry()
	defs := r.Definitions()
	require.NotEmpty(t, defs)

	seen := map[string]bool{}
	for _, def := range defs {
		assert.False(t, seen[def.Type], "duplicate type %s", def.Type)
		seen[def.Type] = true

		assert.NotEmpty(t, def.Label, "%s has no label", def.Type)
		assert.NotEmpty(t, def.Category, "%s has no category", def.Type)
		assert.NotNil(t, def.Render, "%s has no render function", def.Type)

		// Every schema field has a default value available, either in
		// DefaultProps or on the field itself, so a fresh block always
		// renders fully populated.
		for _, field := range def.Schema {
			_, inDefaults := def.DefaultProps[field.Name]
			assert.True(t, inDefaults || field.Default != nil,
				"%s.%s has no default", def.Type, field.Name)

			if field.Type == FieldArray {
				assert.NotEmpty(t, field.ArrayItemSchema,
					"%s.%s array field has no item schema", def.Type, field.Name)
			}
		}
	}

	for _, required := range []string{
		"navigation", "hero", "features", "stats", "pricing", "testimonials",
		"faq", "gallery", "cta", "team", "contact", "footer",
		"text", "heading", "image", "video", "spacer", "divider", "button",
		"login_portal", "schedule", "admissions", "events", "newsletter",
		"map", "html",
	} {
		assert.True(t, seen[required], "catalog missing %s", required)
	}
}

func TestRegistryCategoriesAreOrdered(t *testing.T) {
	r := DefaultRegistry()
	cats := r.Categories()
	require.NotEmpty(t, cats)

	seen := map[string]bool{}
	for _, c := range cats {
		assert.False(t, seen[c], "duplicate category %s", c)
		seen[c] = true
	}
}
