package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/builder"
)

func newTestRenderer() (*Renderer, *builder.Registry) {
	r := builder.DefaultRegistry()
	return NewRenderer(r), r
}

func mustBlock(t *testing.T, r *builder.Registry, blockType string) builder.Block {
	t.Helper()
	b, ok := r.NewBlock(blockType)
	require.True(t, ok, "block type %s missing", blockType)
	return b
}

func TestRenderCanvasEmptyState(t *testing.T) {
	r, _ := newTestRenderer()

	out := r.RenderCanvas(nil, "", builder.DefaultStyles())
	assert.Contains(t, out, "canvas-empty")
	assert.Contains(t, out, "template")
}

func TestRenderCanvasWrapsBlocksWithChrome(t *testing.T) {
	r, reg := newTestRenderer()
	hero := mustBlock(t, reg, "hero")
	text := mustBlock(t, reg, "text")

	out := r.RenderCanvas([]builder.Block{hero, text}, hero.ID, builder.DefaultStyles())

	assert.Contains(t, out, `data-block-id="`+hero.ID+`"`)
	assert.Contains(t, out, "canvas-block-selected")
	assert.Contains(t, out, "canvas-handle")
	assert.Contains(t, out, "canvas-delete")
	assert.Contains(t, out, "event.stopPropagation()")

	// Exactly one block carries the selected class.
	assert.Equal(t, 1, strings.Count(out, "canvas-block-selected"))
}

func TestRenderLiveHasNoEditingChrome(t *testing.T) {
	r, reg := newTestRenderer()
	hero := mustBlock(t, reg, "hero")

	out := r.RenderLive([]builder.Block{hero}, builder.DefaultStyles())

	assert.NotContains(t, out, "canvas-block")
	assert.NotContains(t, out, "contenteditable")
	assert.Contains(t, out, "Welcome to Our School")
}

func TestRenderUnknownTypeSkipsSilently(t *testing.T) {
	r, reg := newTestRenderer()
	hero := mustBlock(t, reg, "hero")
	ghost := builder.Block{ID: builder.NewBlockID(), Type: "retired_widget", Props: builder.Props{}}
	text := mustBlock(t, reg, "text")

	out := r.RenderLive([]builder.Block{hero, ghost, text}, builder.DefaultStyles())

	// Siblings render; the unknown type leaves no trace.
	assert.Contains(t, out, "Welcome to Our School")
	assert.Contains(t, out, "Write something...")
	assert.NotContains(t, out, "retired_widget")
}

func TestRenderSkipsLegacyHeaderWhenNavigationPresent(t *testing.T) {
	r, reg := newTestRenderer()
	nav := mustBlock(t, reg, "navigation")
	legacy := mustBlock(t, reg, "legacy_header")

	out := r.RenderLive([]builder.Block{nav, legacy}, builder.DefaultStyles())
	assert.NotContains(t, out, "mb-legacy-header")

	// Without a navigation block the legacy header still renders.
	alone := r.RenderLive([]builder.Block{legacy}, builder.DefaultStyles())
	assert.Contains(t, alone, "mb-legacy-header")
}

func TestRenderPreviewFrame(t *testing.T) {
	r, reg := newTestRenderer()
	hero := mustBlock(t, reg, "hero")

	out := r.RenderPreview([]builder.Block{hero}, builder.DefaultStyles(), builder.DeviceMobile, 0)
	assert.Contains(t, out, "preview-mobile")
	assert.Contains(t, out, "width:390px")
	assert.Contains(t, out, "scale(1.0000)")

	// A narrow panel scales the frame down.
	scaled := r.RenderPreview([]builder.Block{hero}, builder.DefaultStyles(), builder.DeviceDesktop, 640)
	assert.Contains(t, scaled, "scale(0.5000)")
}

func TestRenderDocumentExposesStyleTokens(t *testing.T) {
	r, reg := newTestRenderer()
	hero := mustBlock(t, reg, "hero")

	styles := builder.DefaultStyles()
	styles.PrimaryColor = "#123456"

	out := r.RenderDocument("Montessori <School>", []builder.Block{hero}, styles)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Montessori &lt;School&gt;")
	assert.Contains(t, out, "--mb-primary:#123456;")
	assert.Contains(t, out, "--mb-font:")
	assert.Contains(t, out, "var(--mb-font)")
}

func TestRenderCanvasSelectedBlockIsEditable(t *testing.T) {
	r, reg := newTestRenderer()
	hero := mustBlock(t, reg, "hero")
	other := mustBlock(t, reg, "heading")

	out := r.RenderCanvas([]builder.Block{hero, other}, hero.ID, builder.DefaultStyles())
	assert.Contains(t, out, "contenteditable")

	// No selection, no inline editing anywhere.
	none := r.RenderCanvas([]builder.Block{hero, other}, "", builder.DefaultStyles())
	assert.NotContains(t, none, "contenteditable")
}
