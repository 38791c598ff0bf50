package builder

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/security"
)

// DefaultAutosaveIdle is how long the builder waits after the last edit
// before firing a silent save.
const DefaultAutosaveIdle = 4 * time.Second

// SaveFunc persists one page's draft blocks. Autosave calls it silently:
// failures are swallowed and retried on the next idle window.
type SaveFunc func(pageID string, blocks []Block) error

// PublishFunc persists one page's published blocks. Publish is explicit and
// its error surfaces to the caller.
type PublishFunc func(pageID string, blocks []Block) error

// Options configures a Builder.
type Options struct {
	Save         SaveFunc
	Publish      PublishFunc
	Styles       GlobalStyles
	AutosaveIdle time.Duration
}

// Builder is the site-builder orchestrator: the exclusive owner of the page
// list, the current-page pointer and the per-page history stacks. Canvas,
// property panel and palette are handed callbacks into it and never mutate
// state directly; every mutation funnels through the push/replace-head/
// set-blocks entry points here.
type Builder struct {
	mu       sync.Mutex
	registry *Registry
	styles   GlobalStyles

	pages   []*Page
	current string

	histories map[string]*History
	editor    *PageEditor

	pendingTemplate *Template

	save     SaveFunc
	publish  PublishFunc
	idle     time.Duration
	autosave *time.Timer
}

// NewBuilder creates an orchestrator over an existing page list. An empty
// list gets a fresh home page so the builder never starts pageless. The
// first page (home page when present) becomes current, with a lazily grown
// one-entry history.
func NewBuilder(registry *Registry, pages []Page, opts Options) *Builder {
	b := &Builder{
		registry:  registry,
		styles:    opts.Styles,
		histories: make(map[string]*History),
		save:      opts.Save,
		publish:   opts.Publish,
		idle:      opts.AutosaveIdle,
	}
	if b.idle == 0 {
		b.idle = DefaultAutosaveIdle
	}
	for i := range pages {
		p := pages[i].Clone()
		b.pages = append(b.pages, &p)
	}
	if len(b.pages) == 0 {
		b.pages = append(b.pages, &Page{
			ID:         uuid.NewString(),
			Title:      "Home",
			Slug:       "",
			Status:     StatusDraft,
			IsHomePage: true,
			Draft:      []Block{},
			Published:  []Block{},
		})
	}
	start := b.pages[0]
	for _, p := range b.pages {
		if p.IsHomePage {
			start = p
			break
		}
	}
	b.current = start.ID
	b.editor = NewPageEditor(registry, start.Draft)
	b.histories[start.ID] = NewHistory(start.Draft)
	return b
}

// Registry returns the block-type registry this builder dispatches through.
func (b *Builder) Registry() *Registry { return b.registry }

// Styles returns the tenant's global style tokens.
func (b *Builder) Styles() GlobalStyles {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.styles
}

// SetStyles replaces the global style tokens (tenant settings changed).
func (b *Builder) SetStyles(s GlobalStyles) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.styles = s
}

// --- pages -------------------------------------------------------------------

// Pages returns copies of all pages in sort order.
func (b *Builder) Pages() []Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Page, len(b.pages))
	for i, p := range b.pages {
		out[i] = p.Clone()
	}
	return out
}

// CurrentPage returns a copy of the page being edited.
func (b *Builder) CurrentPage() Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.syncDraftLocked()
	return b.pageLocked(b.current).Clone()
}

// CurrentPageID returns the ID of the page being edited.
func (b *Builder) CurrentPageID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// SwitchPage makes another page current. Its history stack is initialized
// with a single snapshot on first visit; undo/redo afterwards operate on the
// switched-to page's stack. Canvas selection does not survive the switch.
func (b *Builder) SwitchPage(id string) error {
	b.mu.Lock()
	if id == b.current {
		b.mu.Unlock()
		return nil
	}
	next := b.pageLocked(id)
	if next == nil {
		b.mu.Unlock()
		return fmt.Errorf("page %q not found", id)
	}
	b.syncDraftLocked()
	save, outID, outgoing := b.detachPendingSaveLocked()
	b.pendingTemplate = nil
	b.current = id
	b.editor = NewPageEditor(b.registry, next.Draft)
	if _, ok := b.histories[id]; !ok {
		b.histories[id] = NewHistory(next.Draft)
	}
	b.mu.Unlock()

	if save != nil {
		_ = save(outID, outgoing)
	}
	return nil
}

// AddPage appends a new empty page, derives its slug from the title, and
// makes it current.
func (b *Builder) AddPage(title string) (Page, error) {
	b.mu.Lock()
	if title == "" {
		title = "Untitled Page"
	}
	b.syncDraftLocked()
	save, outID, outgoing := b.detachPendingSaveLocked()
	p := &Page{
		ID:        uuid.NewString(),
		Title:     title,
		Slug:      b.uniqueSlugLocked(security.Slugify(title), ""),
		SortOrder: len(b.pages),
		Status:    StatusDraft,
		Draft:     []Block{},
		Published: []Block{},
	}
	b.pages = append(b.pages, p)
	b.current = p.ID
	b.editor = NewPageEditor(b.registry, p.Draft)
	b.histories[p.ID] = NewHistory(p.Draft)
	out := p.Clone()
	b.mu.Unlock()

	if save != nil {
		_ = save(outID, outgoing)
	}
	return out, nil
}

// DeletePage removes a page. The sole remaining page and the home page are
// protected: deleting either is rejected with no state change. Deleting the
// current page switches editing to the home page.
func (b *Builder) DeletePage(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.pageLocked(id)
	if p == nil {
		return fmt.Errorf("page %q not found", id)
	}
	if len(b.pages) == 1 {
		return fmt.Errorf("cannot delete the last remaining page")
	}
	if p.IsHomePage {
		return fmt.Errorf("cannot delete the home page")
	}
	for i, pp := range b.pages {
		if pp.ID == id {
			b.pages = append(b.pages[:i], b.pages[i+1:]...)
			break
		}
	}
	delete(b.histories, id)
	for i, pp := range b.pages {
		pp.SortOrder = i
	}
	if b.current == id {
		home := b.pages[0]
		for _, pp := range b.pages {
			if pp.IsHomePage {
				home = pp
				break
			}
		}
		b.current = home.ID
		b.editor = NewPageEditor(b.registry, home.Draft)
		if _, ok := b.histories[home.ID]; !ok {
			b.histories[home.ID] = NewHistory(home.Draft)
		}
	}
	return nil
}

// RenamePage sets a page's title and re-derives its URL slug from it. The
// home page keeps its forced-empty slug regardless of title.
func (b *Builder) RenamePage(id, title string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.pageLocked(id)
	if p == nil {
		return fmt.Errorf("page %q not found", id)
	}
	if title == "" {
		return fmt.Errorf("page title cannot be empty")
	}
	p.Title = title
	if !p.IsHomePage {
		p.Slug = b.uniqueSlugLocked(security.Slugify(title), id)
	}
	return nil
}

// SetHomePage moves the home flag to the given page. The flag is unique:
// the previous home page loses it and gets a slug re-derived from its title;
// the new home page's slug is forced empty.
func (b *Builder) SetHomePage(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.pageLocked(id)
	if next == nil {
		return fmt.Errorf("page %q not found", id)
	}
	if next.IsHomePage {
		return nil
	}
	for _, p := range b.pages {
		if p.IsHomePage {
			p.IsHomePage = false
			p.Slug = b.uniqueSlugLocked(security.Slugify(p.Title), p.ID)
		}
	}
	next.IsHomePage = true
	next.Slug = ""
	return nil
}

// Publish copies the current page's draft blocks into its published blocks
// and flips its status. The copy is deep: later draft edits never leak into
// the published list. The publish hook's error, unlike autosave's, surfaces.
func (b *Builder) Publish() (Page, error) {
	b.mu.Lock()
	b.syncDraftLocked()
	p := b.pageLocked(b.current)
	p.Published = CloneBlocks(p.Draft)
	p.Status = StatusPublished
	now := time.Now()
	p.PublishedAt = &now
	snapshot := p.Clone()
	publish := b.publish
	b.mu.Unlock()

	if publish != nil {
		if err := publish(snapshot.ID, snapshot.Published); err != nil {
			return snapshot, fmt.Errorf("publish page %s: %w", snapshot.ID, err)
		}
	}
	return snapshot, nil
}

// --- block editing -----------------------------------------------------------

// Blocks returns the current page's working block list.
func (b *Builder) Blocks() []Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editor.Blocks()
}

// SelectedID returns the selected block's ID, or "".
func (b *Builder) SelectedID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editor.SelectedID()
}

// SelectBlock marks a block as selected.
func (b *Builder) SelectBlock(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editor.Select(id)
}

// ClearSelection deselects (click on empty canvas).
func (b *Builder) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editor.ClearSelection()
}

// InsertBlock adds a new block above the selection (or at the end) and
// selects it. Structural: one history entry.
func (b *Builder) InsertBlock(blockType string) (Block, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	block, err := b.editor.Insert(blockType)
	if err != nil {
		return Block{}, err
	}
	b.commitStructuralLocked()
	return block, nil
}

// DeleteBlock removes a block. Structural.
func (b *Builder) DeleteBlock(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.editor.Delete(id) {
		return false
	}
	b.commitStructuralLocked()
	return true
}

// MoveBlock relocates a block between indexes. One structural history entry
// per completed move, not per intermediate drag frame.
func (b *Builder) MoveBlock(from, to int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.editor.Move(from, to) {
		return false
	}
	b.commitStructuralLocked()
	return true
}

// HandleDrop commits a completed drag gesture (reorder or palette insert).
func (b *Builder) HandleDrop(payload DropPayload, dropIndex int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editor.PointerDown(payload, 0, 0)
	b.editor.PointerMove(DragThreshold, 0)
	if !b.editor.PointerUp(dropIndex) {
		return false
	}
	b.commitStructuralLocked()
	return true
}

// ChangeBlockProps is the single onChange sink shared by inline block
// editing and the property panel: a full-props replacement for one block.
// Continuous: the history head is overwritten, so a run of edits costs one
// undo step.
func (b *Builder) ChangeBlockProps(id string, props Props) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.editor.UpdateProps(id, props) {
		return false
	}
	b.syncDraftLocked()
	b.histories[b.current].ReplaceHead(b.editor.Blocks())
	b.scheduleAutosaveLocked()
	return true
}

// ApplyFieldChange routes one property-panel field write through the schema
// (coercion, clamping, background normalization) and then through the same
// onChange path as every other edit.
func (b *Builder) ApplyFieldChange(blockID, field string, value any) error {
	b.mu.Lock()
	block, ok := b.editor.blockByID(blockID)
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("block %q not found", blockID)
	}
	def := b.registry.Lookup(block.Type)
	if def == nil {
		b.mu.Unlock()
		return fmt.Errorf("unknown block type %q", block.Type)
	}
	b.mu.Unlock()

	props, err := ApplyField(def.Schema, block.Props, field, value)
	if err != nil {
		return err
	}
	b.ChangeBlockProps(blockID, props)
	return nil
}

// Undo steps the current page's history back and makes that snapshot the
// working block list. No-op at the oldest snapshot.
func (b *Builder) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	blocks, ok := b.histories[b.current].Undo()
	if !ok {
		return false
	}
	b.editor.SetBlocks(blocks)
	b.syncDraftLocked()
	b.scheduleAutosaveLocked()
	return true
}

// Redo steps the current page's history forward. No-op at the newest
// snapshot.
func (b *Builder) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	blocks, ok := b.histories[b.current].Redo()
	if !ok {
		return false
	}
	b.editor.SetBlocks(blocks)
	b.syncDraftLocked()
	b.scheduleAutosaveLocked()
	return true
}

// CanUndo reports whether the current page has an undo step.
func (b *Builder) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.histories[b.current].CanUndo()
}

// CanRedo reports whether the current page has a redo step.
func (b *Builder) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.histories[b.current].CanRedo()
}

// --- templates ---------------------------------------------------------------

// RequestTemplate starts template application. Applying onto a page that
// already has content is destructive, so it parks the template and reports
// that a confirmation is needed; ConfirmTemplate is then the only path that
// mutates. An empty page applies immediately.
func (b *Builder) RequestTemplate(tpl Template) (needsConfirm bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.editor.IsEmpty() {
		t := tpl.Clone()
		b.pendingTemplate = &t
		return true
	}
	b.applyTemplateLocked(tpl)
	return false
}

// ConfirmTemplate applies the parked template. The discarded blocks live on
// as the previous history snapshot, so the application is undoable.
func (b *Builder) ConfirmTemplate() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pendingTemplate == nil {
		return false
	}
	tpl := *b.pendingTemplate
	b.pendingTemplate = nil
	b.applyTemplateLocked(tpl)
	return true
}

// CancelTemplate discards the parked template; state is untouched.
func (b *Builder) CancelTemplate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingTemplate = nil
}

// PendingTemplate reports whether a confirmation dialog is outstanding.
func (b *Builder) PendingTemplate() (Template, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pendingTemplate == nil {
		return Template{}, false
	}
	return b.pendingTemplate.Clone(), true
}

func (b *Builder) applyTemplateLocked(tpl Template) {
	blocks := CloneBlocks(tpl.Blocks)
	// Re-key so two applications of one template never collide on IDs.
	for i := range blocks {
		blocks[i].ID = NewBlockID()
	}
	b.editor.ReplaceAll(blocks)
	b.commitStructuralLocked()
}

// --- autosave ----------------------------------------------------------------

// FlushAutosave forces a pending autosave to run now (shutdown, page
// navigation). Like the timer path it is silent and skips clean pages.
func (b *Builder) FlushAutosave() {
	b.mu.Lock()
	if b.autosave != nil {
		b.autosave.Stop()
		b.autosave = nil
	}
	b.mu.Unlock()
	b.autosaveFire()
}

func (b *Builder) scheduleAutosaveLocked() {
	if b.save == nil {
		return
	}
	if b.autosave != nil {
		b.autosave.Stop()
	}
	b.autosave = time.AfterFunc(b.idle, b.autosaveFire)
}

// detachPendingSaveLocked cancels the autosave timer and, when the current
// page holds unsaved edits, hands back its save callback and state so the
// caller can flush it after releasing the lock. Without this, a page left
// dirty at switch time would never reach the save hook until the next sync.
func (b *Builder) detachPendingSaveLocked() (save SaveFunc, pageID string, blocks []Block) {
	h := b.histories[b.current]
	if b.save == nil || h == nil || h.Index() == 0 {
		return nil, "", nil
	}
	if b.autosave != nil {
		b.autosave.Stop()
		b.autosave = nil
	}
	return b.save, b.current, b.editor.Blocks()
}

func (b *Builder) autosaveFire() {
	b.mu.Lock()
	h := b.histories[b.current]
	if b.save == nil || h == nil || h.Index() == 0 {
		b.mu.Unlock()
		return
	}
	pageID := b.current
	blocks := b.editor.Blocks()
	save := b.save
	b.mu.Unlock()

	// Silent by contract: a failed autosave must never block editing.
	// The next idle window retries.
	_ = save(pageID, blocks)
}

// --- internals ---------------------------------------------------------------

func (b *Builder) pageLocked(id string) *Page {
	for _, p := range b.pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (b *Builder) syncDraftLocked() {
	if p := b.pageLocked(b.current); p != nil {
		p.Draft = b.editor.Blocks()
	}
}

func (b *Builder) commitStructuralLocked() {
	b.syncDraftLocked()
	b.histories[b.current].Push(b.editor.Blocks())
	b.scheduleAutosaveLocked()
}

func (b *Builder) uniqueSlugLocked(slug, excludeID string) string {
	candidate := slug
	for n := 2; ; n++ {
		taken := false
		for _, p := range b.pages {
			if p.ID != excludeID && p.Slug == candidate {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
}
