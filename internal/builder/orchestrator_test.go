package builder

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveRecorder captures SaveFunc/PublishFunc invocations.
type saveRecorder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *saveRecorder) fn(pageID string, blocks []Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, pageID)
	return r.err
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestBuilder(opts Options) *Builder {
	return NewBuilder(DefaultRegistry(), nil, opts)
}

func TestNewBuilderNeverStartsPageless(t *testing.T) {
	b := newTestBuilder(Options{})

	pages := b.Pages()
	require.Len(t, pages, 1)
	assert.True(t, pages[0].IsHomePage)
	assert.Equal(t, "", pages[0].Slug)
	assert.Equal(t, "Home", pages[0].Title)
	assert.Equal(t, pages[0].ID, b.CurrentPageID())
}

func TestNewBuilderStartsOnHomePage(t *testing.T) {
	about := Page{ID: "about", Title: "About", Slug: "about"}
	home := Page{ID: "home", Title: "Home", IsHomePage: true}

	b := NewBuilder(DefaultRegistry(), []Page{about, home}, Options{})
	assert.Equal(t, "home", b.CurrentPageID())
}

func TestAddPageDerivesUniqueSlug(t *testing.T) {
	b := newTestBuilder(Options{})

	first, err := b.AddPage("Our Team")
	require.NoError(t, err)
	assert.Equal(t, "our-team", first.Slug)
	assert.Equal(t, first.ID, b.CurrentPageID())

	second, err := b.AddPage("Our Team")
	require.NoError(t, err)
	assert.Equal(t, "our-team-2", second.Slug)
}

func TestDeletePageGuards(t *testing.T) {
	b := newTestBuilder(Options{})
	home := b.CurrentPage()

	// Last remaining page cannot go.
	assert.Error(t, b.DeletePage(home.ID))

	about, err := b.AddPage("About")
	require.NoError(t, err)

	// Home page cannot go either.
	assert.Error(t, b.DeletePage(home.ID))

	// Deleting the current page falls back to home.
	require.Equal(t, about.ID, b.CurrentPageID())
	require.NoError(t, b.DeletePage(about.ID))
	assert.Equal(t, home.ID, b.CurrentPageID())
	assert.Len(t, b.Pages(), 1)
}

func TestSetHomePageMovesFlagAndSlug(t *testing.T) {
	b := newTestBuilder(Options{})
	oldHome := b.CurrentPage()
	about, err := b.AddPage("About")
	require.NoError(t, err)

	require.NoError(t, b.SetHomePage(about.ID))

	var newHome, demoted Page
	for _, p := range b.Pages() {
		switch p.ID {
		case about.ID:
			newHome = p
		case oldHome.ID:
			demoted = p
		}
	}
	assert.True(t, newHome.IsHomePage)
	assert.Equal(t, "", newHome.Slug)
	assert.False(t, demoted.IsHomePage)
	assert.Equal(t, "home", demoted.Slug)

	// Exactly one home page, always.
	count := 0
	for _, p := range b.Pages() {
		if p.IsHomePage {
			count++
			assert.Equal(t, "", p.Slug)
		}
	}
	assert.Equal(t, 1, count)
}

func TestRenamePageKeepsHomeSlugEmpty(t *testing.T) {
	b := newTestBuilder(Options{})
	home := b.CurrentPage()

	require.NoError(t, b.RenamePage(home.ID, "Welcome"))

	renamed := b.CurrentPage()
	assert.Equal(t, "Welcome", renamed.Title)
	assert.Equal(t, "", renamed.Slug)
}

func TestStructuralEditsPushHistory(t *testing.T) {
	b := newTestBuilder(Options{})

	_, err := b.InsertBlock("hero")
	require.NoError(t, err)
	_, err = b.InsertBlock("text")
	require.NoError(t, err)

	require.True(t, b.CanUndo())
	require.True(t, b.Undo())
	assert.Len(t, b.Blocks(), 1)
	require.True(t, b.Undo())
	assert.Len(t, b.Blocks(), 0)
	assert.False(t, b.CanUndo())

	require.True(t, b.Redo())
	require.True(t, b.Redo())
	assert.Len(t, b.Blocks(), 2)
}

func TestPropEditsCollapseToOneUndoStep(t *testing.T) {
	b := newTestBuilder(Options{})

	hero, err := b.InsertBlock("hero")
	require.NoError(t, err)

	for _, title := range []string{"W", "We", "Wel", "Welcome"} {
		require.NoError(t, b.ApplyFieldChange(hero.ID, "title", title))
	}
	assert.Equal(t, "Welcome", b.Blocks()[0].Props["title"])

	// One undo erases the whole typing run, landing on the empty canvas.
	require.True(t, b.Undo())
	assert.Len(t, b.Blocks(), 0)
}

func TestUndoRedoIsPerPage(t *testing.T) {
	b := newTestBuilder(Options{})
	home := b.CurrentPage()

	_, err := b.InsertBlock("hero")
	require.NoError(t, err)

	about, err := b.AddPage("About")
	require.NoError(t, err)

	// Fresh page, fresh stack.
	assert.False(t, b.CanUndo())
	_, err = b.InsertBlock("text")
	require.NoError(t, err)
	require.True(t, b.CanUndo())

	require.NoError(t, b.SwitchPage(home.ID))
	assert.True(t, b.CanUndo())
	require.True(t, b.Undo())
	assert.Len(t, b.Blocks(), 0)

	require.NoError(t, b.SwitchPage(about.ID))
	assert.Len(t, b.Blocks(), 1)
	assert.True(t, b.CanUndo())
}

func TestSwitchPageClearsSelection(t *testing.T) {
	b := newTestBuilder(Options{})
	hero, err := b.InsertBlock("hero")
	require.NoError(t, err)
	require.Equal(t, hero.ID, b.SelectedID())

	_, err = b.AddPage("About")
	require.NoError(t, err)
	assert.Equal(t, "", b.SelectedID())
}

func TestPublishDeepCopiesDraft(t *testing.T) {
	pub := &saveRecorder{}
	b := newTestBuilder(Options{Publish: pub.fn})

	hero, err := b.InsertBlock("hero")
	require.NoError(t, err)
	require.NoError(t, b.ApplyFieldChange(hero.ID, "title", "Version 1"))

	page, err := b.Publish()
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, page.Status)
	require.NotNil(t, page.PublishedAt)
	assert.Equal(t, 1, pub.count())

	// Draft edits after publish never leak into the published copy.
	require.NoError(t, b.ApplyFieldChange(hero.ID, "title", "Version 2"))
	current := b.CurrentPage()
	assert.Equal(t, "Version 2", current.Draft[0].Props["title"])
	assert.Equal(t, "Version 1", current.Published[0].Props["title"])
}

func TestPublishSurfacesHookError(t *testing.T) {
	pub := &saveRecorder{err: errors.New("db down")}
	b := newTestBuilder(Options{Publish: pub.fn})

	_, err := b.InsertBlock("hero")
	require.NoError(t, err)

	_, err = b.Publish()
	assert.Error(t, err)
}

func TestTemplateOnEmptyPageAppliesImmediately(t *testing.T) {
	b := newTestBuilder(Options{})
	tpl, ok := FindTemplate(TemplateCatalog(b.Registry()), "landing")
	require.True(t, ok)

	assert.False(t, b.RequestTemplate(tpl))
	assert.Len(t, b.Blocks(), len(tpl.Blocks))
	_, pending := b.PendingTemplate()
	assert.False(t, pending)
}

func TestTemplateOnPopulatedPageNeedsConfirm(t *testing.T) {
	b := newTestBuilder(Options{})
	_, err := b.InsertBlock("hero")
	require.NoError(t, err)

	tpl, ok := FindTemplate(TemplateCatalog(b.Registry()), "landing")
	require.True(t, ok)

	require.True(t, b.RequestTemplate(tpl))
	// Nothing applied yet.
	assert.Len(t, b.Blocks(), 1)
	_, pending := b.PendingTemplate()
	assert.True(t, pending)

	require.True(t, b.ConfirmTemplate())
	assert.Len(t, b.Blocks(), len(tpl.Blocks))

	// The replaced content is one undo step away.
	require.True(t, b.Undo())
	assert.Len(t, b.Blocks(), 1)
}

func TestTemplateCancelLeavesStateUntouched(t *testing.T) {
	b := newTestBuilder(Options{})
	_, err := b.InsertBlock("hero")
	require.NoError(t, err)

	tpl, ok := FindTemplate(TemplateCatalog(b.Registry()), "portal")
	require.True(t, ok)

	require.True(t, b.RequestTemplate(tpl))
	b.CancelTemplate()

	assert.Len(t, b.Blocks(), 1)
	assert.False(t, b.ConfirmTemplate())
}

func TestTemplateApplicationRekeysBlockIDs(t *testing.T) {
	b := newTestBuilder(Options{})
	tpl, ok := FindTemplate(TemplateCatalog(b.Registry()), "landing")
	require.True(t, ok)

	b.RequestTemplate(tpl)
	first := b.Blocks()

	ids := map[string]bool{}
	for _, blk := range first {
		assert.False(t, ids[blk.ID])
		ids[blk.ID] = true
	}
	for _, src := range tpl.Blocks {
		assert.False(t, ids[src.ID], "template source ID leaked into the page")
	}
}

func TestAutosaveFiresAfterIdle(t *testing.T) {
	rec := &saveRecorder{}
	b := newTestBuilder(Options{Save: rec.fn, AutosaveIdle: 20 * time.Millisecond})

	_, err := b.InsertBlock("hero")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return rec.count() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestAutosaveSkipsCleanPage(t *testing.T) {
	rec := &saveRecorder{}
	b := newTestBuilder(Options{Save: rec.fn, AutosaveIdle: 10 * time.Millisecond})

	// Nothing changed since load, so flushing saves nothing.
	b.FlushAutosave()
	assert.Equal(t, 0, rec.count())
}

func TestAutosaveFailureIsSilentAndRetried(t *testing.T) {
	rec := &saveRecorder{err: errors.New("transient")}
	b := newTestBuilder(Options{Save: rec.fn, AutosaveIdle: 10 * time.Millisecond})

	_, err := b.InsertBlock("hero")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return rec.count() >= 1 },
		time.Second, 5*time.Millisecond)

	// Editing keeps working and the next edit schedules another attempt.
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	_, err = b.InsertBlock("text")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return rec.count() >= 2 },
		time.Second, 5*time.Millisecond)
}

func TestFlushAutosaveSavesDirtyPage(t *testing.T) {
	rec := &saveRecorder{}
	b := newTestBuilder(Options{Save: rec.fn, AutosaveIdle: time.Hour})

	_, err := b.InsertBlock("hero")
	require.NoError(t, err)

	b.FlushAutosave()
	assert.Equal(t, 1, rec.count())
}

func TestLeavingDirtyPageFlushesItsAutosave(t *testing.T) {
	rec := &saveRecorder{}
	b := newTestBuilder(Options{Save: rec.fn, AutosaveIdle: time.Hour})
	homeID := b.CurrentPageID()

	_, err := b.InsertBlock("hero")
	require.NoError(t, err)
	require.Equal(t, 0, rec.count())

	// Adding a page switches to it; the dirty home page is saved on the
	// way out instead of waiting for an idle window that never comes.
	about, err := b.AddPage("About")
	require.NoError(t, err)
	require.Equal(t, 1, rec.count())
	rec.mu.Lock()
	saved := rec.calls[0]
	rec.mu.Unlock()
	assert.Equal(t, homeID, saved)

	// Leaving a clean page flushes nothing.
	require.NoError(t, b.SwitchPage(homeID))
	assert.Equal(t, 1, rec.count())

	// An explicit switch away from a freshly edited page flushes too.
	_, err = b.InsertBlock("text")
	require.NoError(t, err)
	require.NoError(t, b.SwitchPage(about.ID))
	require.Equal(t, 2, rec.count())
	rec.mu.Lock()
	saved = rec.calls[1]
	rec.mu.Unlock()
	assert.Equal(t, homeID, saved)
}
