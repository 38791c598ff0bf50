package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, types ...string) *PageEditor {
	t.Helper()
	e := NewPageEditor(DefaultRegistry(), nil)
	for _, bt := range types {
		_, err := e.Insert(bt)
		require.NoError(t, err)
	}
	e.ClearSelection()
	return e
}

func TestEditorInsertAppendsAndSelects(t *testing.T) {
	reg := DefaultRegistry()
	e := NewPageEditor(reg, nil)

	hero, err := e.Insert("hero")
	require.NoError(t, err)

	assert.Equal(t, 1, e.Len())
	assert.Equal(t, hero.ID, e.SelectedID())
	// A fresh block starts from its definition's defaults.
	assert.Equal(t, reg.Lookup("hero").DefaultProps, hero.Props)

	// With a selection, the next insert lands above it.
	text, err := e.Insert("text")
	require.NoError(t, err)

	blocks := e.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, text.ID, blocks[0].ID)
	assert.Equal(t, hero.ID, blocks[1].ID)
	assert.Equal(t, text.ID, e.SelectedID())
}

func TestEditorInsertUnknownType(t *testing.T) {
	e := NewPageEditor(DefaultRegistry(), nil)

	_, err := e.Insert("no_such_block")
	assert.Error(t, err)
	assert.Equal(t, 0, e.Len())
}

func TestEditorSelectUnknownIDIsNoop(t *testing.T) {
	e := newTestEditor(t, "hero")
	blocks := e.Blocks()

	e.Select(blocks[0].ID)
	e.Select("stale-id")

	assert.Equal(t, blocks[0].ID, e.SelectedID())
}

func TestEditorDeleteSelectedClearsSelection(t *testing.T) {
	e := newTestEditor(t, "hero", "text")
	blocks := e.Blocks()

	e.Select(blocks[1].ID)
	require.True(t, e.Delete(blocks[1].ID))

	assert.Equal(t, "", e.SelectedID())
	assert.Equal(t, 1, e.Len())

	assert.False(t, e.Delete("stale-id"))
}

func TestEditorMove(t *testing.T) {
	e := newTestEditor(t, "hero", "text", "cta")
	before := e.Blocks()

	require.True(t, e.Move(0, 2))

	after := e.Blocks()
	assert.Equal(t, before[1].ID, after[0].ID)
	assert.Equal(t, before[2].ID, after[1].ID)
	assert.Equal(t, before[0].ID, after[2].ID)

	// Out-of-range and same-index moves change nothing.
	assert.False(t, e.Move(0, 0))
	assert.False(t, e.Move(-1, 1))
	assert.False(t, e.Move(0, 3))
}

func TestEditorMoveThereAndBackRestoresOrder(t *testing.T) {
	e := newTestEditor(t, "hero", "text", "cta", "faq")
	before := e.Blocks()

	require.True(t, e.Move(1, 3))
	require.True(t, e.Move(3, 1))

	after := e.Blocks()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Props, after[i].Props)
	}
}

func TestEditorUpdatePropsReplacesWholesale(t *testing.T) {
	e := newTestEditor(t, "text")
	id := e.Blocks()[0].ID

	require.True(t, e.UpdateProps(id, Props{"content": "updated"}))

	blocks := e.Blocks()
	assert.Equal(t, "updated", blocks[0].Props["content"])
	// Replacement, not merge: fields outside the new map are gone.
	_, ok := blocks[0].Props["align"]
	assert.False(t, ok)
}

func TestEditorClickWithinThresholdSelects(t *testing.T) {
	e := newTestEditor(t, "hero", "text")
	id := e.Blocks()[0].ID

	e.PointerDown(DropPayload{Kind: PayloadReorder, BlockID: id}, 100, 100)
	assert.False(t, e.PointerMove(102, 103))
	assert.False(t, e.Dragging())

	changed := e.PointerUp(1)
	assert.False(t, changed)
	assert.Equal(t, id, e.SelectedID())
	// List untouched.
	assert.Equal(t, id, e.Blocks()[0].ID)
}

func TestEditorDragPastThresholdReorders(t *testing.T) {
	e := newTestEditor(t, "hero", "text", "cta")
	blocks := e.Blocks()

	e.PointerDown(DropPayload{Kind: PayloadReorder, BlockID: blocks[0].ID}, 100, 100)
	assert.True(t, e.PointerMove(100, 110))
	assert.True(t, e.Dragging())

	require.True(t, e.PointerUp(2))

	after := e.Blocks()
	assert.Equal(t, blocks[0].ID, after[2].ID)
}

func TestEditorPaletteDropInserts(t *testing.T) {
	e := newTestEditor(t, "hero", "text")

	e.PointerDown(DropPayload{Kind: PayloadPalette, BlockType: "cta"}, 50, 50)
	e.PointerMove(50, 70)
	require.True(t, e.PointerUp(1))

	blocks := e.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, "cta", blocks[1].Type)
	assert.Equal(t, blocks[1].ID, e.SelectedID())
}

func TestEditorDropOutsideTargetIsNoop(t *testing.T) {
	e := newTestEditor(t, "hero", "text")
	before := e.Blocks()

	e.PointerDown(DropPayload{Kind: PayloadReorder, BlockID: before[0].ID}, 0, 0)
	e.PointerMove(0, 50)
	assert.False(t, e.PointerUp(-1))

	assert.Equal(t, before[0].ID, e.Blocks()[0].ID)
}

func TestEditorCancelDrag(t *testing.T) {
	e := newTestEditor(t, "hero", "text")
	id := e.Blocks()[0].ID

	e.PointerDown(DropPayload{Kind: PayloadReorder, BlockID: id}, 0, 0)
	e.PointerMove(0, 50)
	e.CancelDrag()

	assert.False(t, e.Dragging())
	assert.False(t, e.PointerUp(1))
	assert.Equal(t, id, e.Blocks()[0].ID)
}

func TestResolveDropIndex(t *testing.T) {
	centers := []float64{50, 150, 250}

	assert.Equal(t, 0, ResolveDropIndex(centers, 10))
	assert.Equal(t, 1, ResolveDropIndex(centers, 160))
	assert.Equal(t, 2, ResolveDropIndex(centers, 400))
	assert.Equal(t, 0, ResolveDropIndex(nil, 123))
}

func TestEditorSetBlocksKeepsLiveSelection(t *testing.T) {
	e := newTestEditor(t, "hero", "text")
	blocks := e.Blocks()
	e.Select(blocks[0].ID)

	// Selected block survives the swap.
	e.SetBlocks(blocks)
	assert.Equal(t, blocks[0].ID, e.SelectedID())

	// Selected block gone: selection clears.
	e.SetBlocks(blocks[1:])
	assert.Equal(t, "", e.SelectedID())
}
