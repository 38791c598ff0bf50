// Package ui renders a page's block list to HTML. The same registry-driven
// block lookup feeds three variants: the editable canvas, the published live
// site and the scaled device preview.
package ui

import (
	"fmt"
	"html"
	"strings"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/builder"
)

// Renderer turns block lists into HTML. It owns no page state; callers pass
// the list, the selection and the tenant style tokens on every call.
type Renderer struct {
	registry *builder.Registry
}

// NewRenderer creates a renderer over a block registry.
func NewRenderer(registry *builder.Registry) *Renderer {
	return &Renderer{registry: registry}
}

// RenderLive produces the published-site markup: props frozen, no editing
// affordances. Used for the live tenant site.
func (r *Renderer) RenderLive(blocks []builder.Block, styles builder.GlobalStyles) string {
	return r.renderList(blocks, builder.RenderContext{Mode: builder.ModeLive, Styles: styles}, "")
}

// RenderCanvas produces the editable canvas markup: each block wrapped in
// selection chrome with a drag handle and move/delete controls. Exactly one
// block (the selected one) renders with inline-edit affordances.
func (r *Renderer) RenderCanvas(blocks []builder.Block, selectedID string, styles builder.GlobalStyles) string {
	if len(blocks) == 0 {
		return `<div class="canvas-empty"><p>This page is empty.</p>` +
			`<p>Drag a block from the palette or pick a template to get started.</p></div>`
	}
	return r.renderList(blocks, builder.RenderContext{Mode: builder.ModeCanvas, Styles: styles}, selectedID)
}

// RenderPreview produces the scaled device-mockup markup used by template
// and portal previews. The frame carries the device width and fit scale;
// block bodies render without editing affordances.
func (r *Renderer) RenderPreview(blocks []builder.Block, styles builder.GlobalStyles, device builder.Device, panelWidth float64) string {
	scale := builder.FitScale(device, panelWidth)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		`<div class="preview-frame preview-%s" style="width:%.0fpx;transform:scale(%.4f);transform-origin:top left">`,
		device, device.Width(), scale))
	sb.WriteString(r.renderList(blocks, builder.RenderContext{Mode: builder.ModePreview, Styles: styles}, ""))
	sb.WriteString(`</div>`)
	return sb.String()
}

// RenderDocument wraps live markup in a complete HTML document with the
// tenant style tokens exposed as CSS custom properties.
func (r *Renderer) RenderDocument(title string, blocks []builder.Block, styles builder.GlobalStyles) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	sb.WriteString("<style>" + baseCSS + "</style>\n")
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf(`<body style="%s">`, styleVars(styles)))
	sb.WriteString(r.RenderLive(blocks, styles))
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// renderList is the single registry-lookup path shared by every variant.
// A type missing from the registry renders nothing; sibling blocks are
// unaffected. Cross-block concerns resolve here, before mapping: a page
// that carries a navigation block skips legacy header blocks.
func (r *Renderer) renderList(blocks []builder.Block, ctx builder.RenderContext, selectedID string) string {
	hasNav := false
	for _, b := range blocks {
		if b.Type == "navigation" {
			hasNav = true
			break
		}
	}
	ctx.Siblings = blocks

	var sb strings.Builder
	for i, b := range blocks {
		if hasNav && b.Type == "legacy_header" {
			continue
		}
		def := r.registry.Lookup(b.Type)
		if def == nil || def.Render == nil {
			continue
		}
		blockCtx := ctx
		blockCtx.Selected = ctx.Mode == builder.ModeCanvas && b.ID == selectedID
		body := def.Render(b.Clone(), blockCtx)
		if ctx.Mode == builder.ModeCanvas {
			sb.WriteString(canvasWrap(b, i, blockCtx.Selected, body))
		} else {
			sb.WriteString(body)
		}
	}
	return sb.String()
}

// canvasWrap adds the editor chrome around one rendered block. The wrapper
// stops click propagation so nested blocks never bubble-select their
// container, and the handle is the only drag source.
func canvasWrap(b builder.Block, index int, selected bool, body string) string {
	class := "canvas-block"
	if selected {
		class += " canvas-block-selected"
	}
	id := html.EscapeString(b.ID)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		`<div class="%s" data-block-id="%s" data-block-type="%s" data-index="%d" onclick="event.stopPropagation()">`,
		class, id, html.EscapeString(b.Type), index))
	sb.WriteString(`<div class="canvas-toolbar">`)
	sb.WriteString(`<span class="canvas-handle" draggable="true" title="Drag to reorder">&#10495;</span>`)
	sb.WriteString(fmt.Sprintf(`<button class="canvas-move" data-dir="up" data-block-id="%s">&uarr;</button>`, id))
	sb.WriteString(fmt.Sprintf(`<button class="canvas-move" data-dir="down" data-block-id="%s">&darr;</button>`, id))
	sb.WriteString(fmt.Sprintf(`<button class="canvas-delete" data-block-id="%s">&times;</button>`, id))
	sb.WriteString(`</div>`)
	sb.WriteString(body)
	sb.WriteString(`</div>`)
	return sb.String()
}

// styleVars maps the tenant style tokens to CSS custom properties. Blocks
// consume the variables; the tokens never live in block props.
func styleVars(s builder.GlobalStyles) string {
	d := builder.DefaultStyles()
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return fmt.Sprintf(
		"--mb-font:%s;--mb-primary:%s;--mb-secondary:%s;--mb-accent:%s;--mb-bg:%s;",
		html.EscapeString(pick(s.FontFamily, d.FontFamily)),
		html.EscapeString(pick(s.PrimaryColor, d.PrimaryColor)),
		html.EscapeString(pick(s.SecondaryColor, d.SecondaryColor)),
		html.EscapeString(pick(s.AccentColor, d.AccentColor)),
		html.EscapeString(pick(s.BackgroundColor, d.BackgroundColor)),
	)
}

const baseCSS = `
body{margin:0;font-family:var(--mb-font);background:var(--mb-bg);color:#111827}
.mb-block{padding:48px 24px}
.mb-btn{display:inline-block;padding:12px 28px;border-radius:8px;background:var(--mb-primary);color:#fff;text-decoration:none;border:none;cursor:pointer}
.mb-btn-secondary{background:var(--mb-secondary)}
.mb-btn-outline{background:transparent;color:var(--mb-primary);border:2px solid var(--mb-primary)}
.mb-hero{display:flex;flex-direction:column;justify-content:center;gap:12px}
.mb-nav{display:flex;justify-content:space-between;align-items:center}
.mb-nav ul{display:flex;gap:24px;list-style:none;margin:0;padding:0}
.mb-nav a{color:inherit;text-decoration:none}
.mb-grid{display:grid;gap:24px}
.mb-grid-2{grid-template-columns:repeat(2,1fr)}
.mb-grid-3{grid-template-columns:repeat(3,1fr)}
.mb-grid-4{grid-template-columns:repeat(4,1fr)}
.mb-stats{display:flex;justify-content:space-around;text-align:center}
.mb-stat strong{display:block;font-size:2.2rem;color:var(--mb-primary)}
.mb-plans{display:flex;gap:24px;justify-content:center}
.mb-plan{border:1px solid #e5e7eb;border-radius:12px;padding:24px;flex:1;max-width:320px}
.mb-plan-highlighted{border-color:var(--mb-accent);box-shadow:0 8px 24px rgba(0,0,0,.08)}
.mb-quotes{display:flex;gap:24px;flex-wrap:wrap}
.mb-quote{border-left:4px solid var(--mb-accent);padding-left:16px;font-style:italic}
.mb-gallery{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:16px}
.mb-gallery img{width:100%;border-radius:8px}
.mb-team{display:flex;gap:24px;flex-wrap:wrap}
.mb-member img{width:120px;height:120px;border-radius:50%;object-fit:cover}
.mb-portal{max-width:420px;margin:0 auto;text-align:center}
.mb-portal form{display:flex;flex-direction:column;gap:12px}
.mb-portal input,.mb-contact-form input,.mb-contact-form textarea,.mb-newsletter input{padding:12px;border:1px solid #d1d5db;border-radius:8px}
.mb-schedule{width:100%;border-collapse:collapse}
.mb-schedule td{border-bottom:1px solid #e5e7eb;padding:8px}
.mb-rounded img{border-radius:16px}
.mb-map{width:100%;height:380px;border:0}
`
