package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/builder"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/store"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/ui"
)

// SiteHandler serves published tenant sites to the public
type SiteHandler struct {
	store    *store.SiteStore
	renderer *ui.Renderer
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(s *store.SiteStore, registry *builder.Registry) *SiteHandler {
	return &SiteHandler{store: s, renderer: ui.NewRenderer(registry)}
}

// ServePage renders a published page as a full HTML document. The empty
// slug resolves to the tenant's home page.
func (h *SiteHandler) ServePage(c *gin.Context) {
	tenantCode := c.Param("tenant")
	slug := strings.Trim(c.Param("slug"), "/")

	site, err := h.store.SiteByTenantCode(tenantCode)
	if err != nil {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}

	page, blocks, err := h.store.PublishedPage(site.ID, slug)
	if err != nil {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}

	title := page.SeoTitle
	if title == "" {
		title = page.Title
	}

	html := h.renderer.RenderDocument(title, blocks, store.StylesOf(site))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

const notFoundPage = `<!DOCTYPE html>
<html>
<head><title>Page Not Found</title></head>
<body style="font-family:sans-serif;text-align:center;padding:80px">
<h1>404</h1>
<p>This page does not exist or has not been published yet.</p>
</body>
</html>`
