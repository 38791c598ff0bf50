package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/builder"
	apperrors "github.com/TestimonyAdegoke/montessa-sub000/internal/errors"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/store"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/ui"
)

// builderSession holds one tenant's live editing state
type builderSession struct {
	siteID     uuid.UUID
	builder    *builder.Builder
	lastAccess time.Time
}

// BuilderHandler exposes the site builder over HTTP. Each tenant gets one
// in-memory editing session hydrated from the store on first access.
type BuilderHandler struct {
	store    *store.SiteStore
	registry *builder.Registry
	renderer *ui.Renderer

	mu       sync.Mutex
	sessions map[uuid.UUID]*builderSession

	autosaveIdle time.Duration
	sessionTTL   time.Duration
}

// NewBuilderHandler creates a builder handler and starts session eviction
func NewBuilderHandler(s *store.SiteStore, registry *builder.Registry, autosaveIdle, sessionTTL time.Duration) *BuilderHandler {
	h := &BuilderHandler{
		store:        s,
		registry:     registry,
		renderer:     ui.NewRenderer(registry),
		sessions:     make(map[uuid.UUID]*builderSession),
		autosaveIdle: autosaveIdle,
		sessionTTL:   sessionTTL,
	}
	go h.evictLoop()
	return h
}

func (h *BuilderHandler) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.Lock()
		cutoff := time.Now().Add(-h.sessionTTL)
		for tenantID, sess := range h.sessions {
			if sess.lastAccess.Before(cutoff) {
				sess.builder.FlushAutosave()
				delete(h.sessions, tenantID)
			}
		}
		h.mu.Unlock()
	}
}

// session returns the tenant's editing session, hydrating it from the
// store when none exists yet.
func (h *BuilderHandler) session(c *gin.Context) (*builderSession, bool) {
	tenantID := MustTenantID(c)
	if tenantID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if sess, ok := h.sessions[tenantID]; ok {
		sess.lastAccess = time.Now()
		return sess, true
	}

	site, err := h.store.EnsureSite(tenantID, "School Site")
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to load site", err))
		c.JSON(status, body)
		return nil, false
	}

	pages, styles, err := h.store.LoadPages(site.ID)
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to load pages", err))
		c.JSON(status, body)
		return nil, false
	}

	b := builder.NewBuilder(h.registry, pages, builder.Options{
		Save:         h.store.SaveDraft,
		Publish:      h.store.SavePublished,
		Styles:       styles,
		AutosaveIdle: h.autosaveIdle,
	})

	sess := &builderSession{siteID: site.ID, builder: b, lastAccess: time.Now()}
	h.sessions[tenantID] = sess
	return sess, true
}

// syncPages persists the page list after structural page changes
func (h *BuilderHandler) syncPages(sess *builderSession) error {
	return h.store.SyncPages(sess.siteID, sess.builder.Pages())
}

func pageJSON(p builder.Page) gin.H {
	return gin.H{
		"id":              p.ID,
		"title":           p.Title,
		"slug":            p.Slug,
		"sort_order":      p.SortOrder,
		"status":          p.Status,
		"is_home_page":    p.IsHomePage,
		"seo_title":       p.SeoTitle,
		"seo_description": p.SeoDescription,
	}
}

// GetState returns the full builder state for the editing UI
func (h *BuilderHandler) GetState(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	b := sess.builder

	pages := b.Pages()
	pageList := make([]gin.H, 0, len(pages))
	for _, p := range pages {
		pageList = append(pageList, pageJSON(p))
	}

	defs := h.registry.Definitions()
	palette := make([]gin.H, 0, len(defs))
	for _, d := range defs {
		palette = append(palette, gin.H{
			"type":     d.Type,
			"label":    d.Label,
			"icon":     d.Icon,
			"category": d.Category,
		})
	}

	current := b.CurrentPage()
	resp := gin.H{
		"pages":        pageList,
		"current_page": pageJSON(current),
		"blocks":       b.Blocks(),
		"selected_id":  b.SelectedID(),
		"can_undo":     b.CanUndo(),
		"can_redo":     b.CanRedo(),
		"palette":      palette,
		"styles":       b.Styles(),
	}
	if tpl, pending := b.PendingTemplate(); pending {
		resp["pending_template"] = tpl.ID
	}
	c.JSON(http.StatusOK, resp)
}

// GetPanel returns the property panel form for the selected block
func (h *BuilderHandler) GetPanel(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	b := sess.builder

	selected := b.SelectedID()
	if selected == "" {
		c.JSON(http.StatusOK, gin.H{"groups": []builder.FormGroup{}})
		return
	}

	var block builder.Block
	found := false
	for _, blk := range b.Blocks() {
		if blk.ID == selected {
			block = blk
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"groups": []builder.FormGroup{}})
		return
	}

	def := h.registry.Lookup(block.Type)
	if def == nil {
		c.JSON(http.StatusOK, gin.H{"groups": []builder.FormGroup{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"block_id":   block.ID,
		"block_type": block.Type,
		"groups":     builder.BuildForm(def.Schema, block.Props),
	})
}

// InsertBlockRequest is the insert request body
type InsertBlockRequest struct {
	Type string `json:"type" binding:"required"`
}

// InsertBlock adds a new block of the given type to the canvas
func (h *BuilderHandler) InsertBlock(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req InsertBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	block, err := sess.builder.InsertBlock(req.Type)
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest(err.Error()))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"block": block, "blocks": sess.builder.Blocks()})
}

// DeleteBlock removes a block from the canvas
func (h *BuilderHandler) DeleteBlock(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if !sess.builder.DeleteBlock(c.Param("id")) {
		status, body := apperrors.ToHTTPError(apperrors.NotFound("block"))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": sess.builder.Blocks()})
}

// MoveBlockRequest is the move request body
type MoveBlockRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveBlock reorders a block on the canvas
func (h *BuilderHandler) MoveBlock(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req MoveBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !sess.builder.MoveBlock(req.From, req.To) {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest("invalid move indices"))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": sess.builder.Blocks()})
}

// DropRequest is the drag-and-drop commit body
type DropRequest struct {
	Kind      string `json:"kind" binding:"required"`
	BlockID   string `json:"block_id"`
	BlockType string `json:"block_type"`
	DropIndex int    `json:"drop_index"`
}

// HandleDrop commits a drag-and-drop gesture. Palette drops insert a new
// block at the drop index, reorder drops move an existing block there.
func (h *BuilderHandler) HandleDrop(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payload := builder.DropPayload{BlockID: req.BlockID, BlockType: req.BlockType}
	switch req.Kind {
	case "reorder":
		payload.Kind = builder.PayloadReorder
	case "palette":
		payload.Kind = builder.PayloadPalette
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be reorder or palette"})
		return
	}

	if !sess.builder.HandleDrop(payload, req.DropIndex) {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest("drop could not be applied"))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": sess.builder.Blocks()})
}

// SelectBlock marks a block as selected
func (h *BuilderHandler) SelectBlock(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.builder.SelectBlock(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"selected_id": sess.builder.SelectedID()})
}

// ClearSelection clears the block selection
func (h *BuilderHandler) ClearSelection(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.builder.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"selected_id": ""})
}

// FieldChangeRequest is the property change body
type FieldChangeRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

// ChangeField applies a single property panel edit to a block
func (h *BuilderHandler) ChangeField(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req FieldChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := sess.builder.ApplyFieldChange(c.Param("id"), req.Field, req.Value); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest(err.Error()))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": sess.builder.Blocks()})
}

// ArrayOpRequest is the array field operation body
type ArrayOpRequest struct {
	Field string         `json:"field" binding:"required"`
	Op    string         `json:"op" binding:"required"`
	Index int            `json:"index"`
	Item  map[string]any `json:"item"`
}

// ChangeArrayField applies an add, remove or update operation on an array
// property. The whole array is written back as one continuous edit.
func (h *BuilderHandler) ChangeArrayField(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req ArrayOpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b := sess.builder
	blockID := c.Param("id")

	var block builder.Block
	found := false
	for _, blk := range b.Blocks() {
		if blk.ID == blockID {
			block = blk
			found = true
			break
		}
	}
	if !found {
		status, body := apperrors.ToHTTPError(apperrors.NotFound("block"))
		c.JSON(status, body)
		return
	}

	def := h.registry.Lookup(block.Type)
	if def == nil {
		status, body := apperrors.ToHTTPError(apperrors.NotFound("block definition"))
		c.JSON(status, body)
		return
	}

	var (
		next builder.Props
		err  error
	)
	switch req.Op {
	case "add":
		next, err = builder.AppendArrayItem(def.Schema, block.Props, req.Field)
	case "remove":
		next, err = builder.RemoveArrayItem(def.Schema, block.Props, req.Field, req.Index)
	case "update":
		next, err = builder.UpdateArrayItem(def.Schema, block.Props, req.Field, req.Index, req.Item)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "op must be add, remove or update"})
		return
	}
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest(err.Error()))
		c.JSON(status, body)
		return
	}

	b.ChangeBlockProps(blockID, next)
	c.JSON(http.StatusOK, gin.H{"blocks": b.Blocks()})
}

// Undo steps the current page's history back
func (h *BuilderHandler) Undo(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	moved := sess.builder.Undo()
	c.JSON(http.StatusOK, gin.H{
		"moved":    moved,
		"blocks":   sess.builder.Blocks(),
		"can_undo": sess.builder.CanUndo(),
		"can_redo": sess.builder.CanRedo(),
	})
}

// Redo steps the current page's history forward
func (h *BuilderHandler) Redo(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	moved := sess.builder.Redo()
	c.JSON(http.StatusOK, gin.H{
		"moved":    moved,
		"blocks":   sess.builder.Blocks(),
		"can_undo": sess.builder.CanUndo(),
		"can_redo": sess.builder.CanRedo(),
	})
}

// Publish copies the current page's draft blocks to its published state
func (h *BuilderHandler) Publish(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	page, err := sess.builder.Publish()
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("publish failed", err))
		c.JSON(status, body)
		return
	}
	if err := h.syncPages(sess); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to persist pages", err))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageJSON(page)})
}

// Flush forces a pending autosave to run now
func (h *BuilderHandler) Flush(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.builder.FlushAutosave()
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

// ListTemplates returns the template catalog
func (h *BuilderHandler) ListTemplates(c *gin.Context) {
	catalog := builder.TemplateCatalog(h.registry)
	out := make([]gin.H, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, gin.H{
			"id":          t.ID,
			"name":        t.Name,
			"description": t.Description,
			"thumbnail":   t.Thumbnail,
			"blocks":      len(t.Blocks),
		})
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

// ApplyTemplate requests applying a template to the current page. A page
// with existing content requires confirmation first.
func (h *BuilderHandler) ApplyTemplate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	tpl, found := builder.FindTemplate(builder.TemplateCatalog(h.registry), c.Param("id"))
	if !found {
		status, body := apperrors.ToHTTPError(apperrors.NotFound("template"))
		c.JSON(status, body)
		return
	}

	if sess.builder.RequestTemplate(tpl) {
		c.JSON(http.StatusOK, gin.H{"needs_confirm": true, "template": tpl.ID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"needs_confirm": false, "blocks": sess.builder.Blocks()})
}

// ConfirmTemplate applies the pending template, replacing existing content
func (h *BuilderHandler) ConfirmTemplate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if !sess.builder.ConfirmTemplate() {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest("no template pending confirmation"))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": sess.builder.Blocks()})
}

// CancelTemplate discards the pending template request
func (h *BuilderHandler) CancelTemplate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.builder.CancelTemplate()
	c.JSON(http.StatusOK, gin.H{"message": "cancelled"})
}

// ListPages returns all pages of the site
func (h *BuilderHandler) ListPages(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	pages := sess.builder.Pages()
	out := make([]gin.H, 0, len(pages))
	for _, p := range pages {
		out = append(out, pageJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"pages": out, "current": sess.builder.CurrentPageID()})
}

// CreatePageRequest is the create page body
type CreatePageRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreatePage adds a new page and switches to it
func (h *BuilderHandler) CreatePage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	page, err := sess.builder.AddPage(req.Title)
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest(err.Error()))
		c.JSON(status, body)
		return
	}
	if err := h.syncPages(sess); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to persist pages", err))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": pageJSON(page)})
}

// SwitchPage makes another page current
func (h *BuilderHandler) SwitchPage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.builder.SwitchPage(c.Param("id")); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.NotFound("page"))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current_page": pageJSON(sess.builder.CurrentPage()),
		"blocks":       sess.builder.Blocks(),
		"can_undo":     sess.builder.CanUndo(),
		"can_redo":     sess.builder.CanRedo(),
	})
}

// RenamePageRequest is the rename page body
type RenamePageRequest struct {
	Title string `json:"title" binding:"required"`
}

// RenamePage changes a page title and re-derives its slug
func (h *BuilderHandler) RenamePage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req RenamePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := sess.builder.RenamePage(c.Param("id"), req.Title); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest(err.Error()))
		c.JSON(status, body)
		return
	}
	if err := h.syncPages(sess); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to persist pages", err))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": h.pagesJSON(sess)})
}

// DeletePage removes a page. The home page and the last remaining page
// cannot be deleted.
func (h *BuilderHandler) DeletePage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.builder.DeletePage(c.Param("id")); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest(err.Error()))
		c.JSON(status, body)
		return
	}
	if err := h.syncPages(sess); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to persist pages", err))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pages":   h.pagesJSON(sess),
		"current": sess.builder.CurrentPageID(),
	})
}

// SetHomePage marks a page as the site home page
func (h *BuilderHandler) SetHomePage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.builder.SetHomePage(c.Param("id")); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.BadRequest(err.Error()))
		c.JSON(status, body)
		return
	}
	if err := h.syncPages(sess); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to persist pages", err))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": h.pagesJSON(sess)})
}

func (h *BuilderHandler) pagesJSON(sess *builderSession) []gin.H {
	pages := sess.builder.Pages()
	out := make([]gin.H, 0, len(pages))
	for _, p := range pages {
		out = append(out, pageJSON(p))
	}
	return out
}

// UpdateStylesRequest is the global styles body
type UpdateStylesRequest struct {
	FontFamily      string `json:"font_family"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	AccentColor     string `json:"accent_color"`
	BackgroundColor string `json:"background_color"`
}

// UpdateStyles replaces the site's global styles
func (h *BuilderHandler) UpdateStyles(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req UpdateStylesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	styles := sess.builder.Styles()
	if req.FontFamily != "" {
		styles.FontFamily = req.FontFamily
	}
	if req.PrimaryColor != "" {
		styles.PrimaryColor = req.PrimaryColor
	}
	if req.SecondaryColor != "" {
		styles.SecondaryColor = req.SecondaryColor
	}
	if req.AccentColor != "" {
		styles.AccentColor = req.AccentColor
	}
	if req.BackgroundColor != "" {
		styles.BackgroundColor = req.BackgroundColor
	}
	sess.builder.SetStyles(styles)

	if err := h.store.SaveStyles(sess.siteID, styles); err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to persist styles", err))
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"styles": styles})
}

// RenderCanvas returns the editing canvas HTML for the current page
func (h *BuilderHandler) RenderCanvas(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	b := sess.builder
	html := h.renderer.RenderCanvas(b.Blocks(), b.SelectedID(), b.Styles())
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// RenderPreview returns the device preview HTML for the current page
func (h *BuilderHandler) RenderPreview(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	device := builder.Device(c.DefaultQuery("device", string(builder.DeviceDesktop)))
	if !device.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device must be desktop, tablet or mobile"})
		return
	}

	panelWidth, _ := strconv.ParseFloat(c.DefaultQuery("width", "0"), 64)

	b := sess.builder
	html := h.renderer.RenderPreview(b.Blocks(), b.Styles(), device, panelWidth)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
