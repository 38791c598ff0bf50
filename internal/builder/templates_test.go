package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCatalogUsesRegisteredTypesOnly(t *testing.T) {
	r := DefaultRegistry()
	catalog := TemplateCatalog(r)
	require.NotEmpty(t, catalog)

	for _, tpl := range catalog {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Blocks, "template %s is empty", tpl.ID)
		for _, b := range tpl.Blocks {
			assert.True(t, r.Has(b.Type), "template %s references unknown type %s", tpl.ID, b.Type)
			assert.NotEmpty(t, b.ID, "template %s has a block without an ID", tpl.ID)
		}
	}
}

func TestFindTemplate(t *testing.T) {
	catalog := TemplateCatalog(DefaultRegistry())

	tpl, ok := FindTemplate(catalog, "landing")
	require.True(t, ok)
	assert.Equal(t, "landing", tpl.ID)

	_, ok = FindTemplate(catalog, "nonexistent")
	assert.False(t, ok)
}

func TestTemplateCloneIsolatesBlocks(t *testing.T) {
	catalog := TemplateCatalog(DefaultRegistry())
	tpl, ok := FindTemplate(catalog, "landing")
	require.True(t, ok)

	clone := tpl.Clone()
	clone.Blocks[0].Props["title"] = "mutated"

	assert.NotEqual(t, "mutated", tpl.Blocks[0].Props["title"])
}
