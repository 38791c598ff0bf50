package builder

import (
	"fmt"
	"math"
)

// DragThreshold is the pointer deadzone, in canvas pixels, that separates a
// click-to-select from a drag-to-reorder.
const DragThreshold = 6.0

// Drop payload channels. A drag carries exactly one of these, so a drop is
// unambiguously either a reorder of an existing block or an insertion of a
// new block from the palette.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	// PayloadReorder carries the ID of an existing canvas block.
	PayloadReorder
	// PayloadPalette carries a block-type identifier from the palette.
	PayloadPalette
)

// DropPayload is what a drag gesture delivers on release.
type DropPayload struct {
	Kind      PayloadKind
	BlockID   string
	BlockType string
}

type dragPhase int

const (
	dragIdle dragPhase = iota
	dragPending
	dragActive
)

type dragState struct {
	phase   dragPhase
	payload DropPayload
	originX float64
	originY float64
}

// PageEditor is the canvas state machine over one page's ordered block list:
// single selection, insertion, deletion, reordering and the drag gesture
// lifecycle. It never talks to history or persistence; the orchestrator
// funnels its results into those.
type PageEditor struct {
	registry *Registry
	blocks   []Block
	selected string
	drag     dragState
}

// NewPageEditor wraps an existing block list. The list is copied; the caller
// keeps its own slice.
func NewPageEditor(registry *Registry, blocks []Block) *PageEditor {
	return &PageEditor{registry: registry, blocks: CloneBlocks(blocks)}
}

// Blocks returns a copy of the current block list.
func (e *PageEditor) Blocks() []Block {
	return CloneBlocks(e.blocks)
}

// SetBlocks replaces the list wholesale (undo/redo, page switch). Selection
// is kept when the selected block still exists, cleared otherwise.
func (e *PageEditor) SetBlocks(blocks []Block) {
	e.blocks = CloneBlocks(blocks)
	if e.selected != "" && e.indexOf(e.selected) < 0 {
		e.selected = ""
	}
}

// Len returns the number of blocks on the page.
func (e *PageEditor) Len() int { return len(e.blocks) }

// IsEmpty reports whether the canvas shows the placeholder state.
func (e *PageEditor) IsEmpty() bool { return len(e.blocks) == 0 }

// SelectedID returns the ID of the selected block, or "".
func (e *PageEditor) SelectedID() string { return e.selected }

// Selected returns the selected block, if any.
func (e *PageEditor) Selected() (Block, bool) {
	if i := e.indexOf(e.selected); i >= 0 {
		return e.blocks[i].Clone(), true
	}
	return Block{}, false
}

// Select marks a block as the single selection. Selecting an unknown ID is a
// no-op so a click on a stale overlay cannot clear state. Clicks on nested
// blocks stop propagation in the canvas markup, so a child click reaches
// here with the child's ID, never the container's.
func (e *PageEditor) Select(id string) {
	if e.indexOf(id) >= 0 {
		e.selected = id
	}
}

// ClearSelection deselects; this is the click-on-empty-canvas path.
func (e *PageEditor) ClearSelection() { e.selected = "" }

// Insert creates a new block of the given type, placing it immediately
// above the current selection or appending when nothing is selected. The new
// block becomes the selection.
func (e *PageEditor) Insert(blockType string) (Block, error) {
	block, ok := e.registry.NewBlock(blockType)
	if !ok {
		return Block{}, fmt.Errorf("unknown block type %q", blockType)
	}
	at := len(e.blocks)
	if i := e.indexOf(e.selected); i >= 0 {
		at = i
	}
	e.blocks = insertBlock(e.blocks, at, block)
	e.selected = block.ID
	return block.Clone(), nil
}

// InsertAt places a new block of the given type at an explicit index
// (palette drop). The index is clamped to the list bounds and the new block
// becomes the selection.
func (e *PageEditor) InsertAt(blockType string, index int) (Block, error) {
	block, ok := e.registry.NewBlock(blockType)
	if !ok {
		return Block{}, fmt.Errorf("unknown block type %q", blockType)
	}
	e.blocks = insertBlock(e.blocks, clampIndex(index, len(e.blocks)), block)
	e.selected = block.ID
	return block.Clone(), nil
}

// Delete removes a block by ID. Deleting the selected block clears the
// selection; unknown IDs are a no-op.
func (e *PageEditor) Delete(id string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
	if e.selected == id {
		e.selected = ""
	}
	return true
}

// Move relocates the block at index from to index to: remove at the old
// index, insert at the new one. Indexes refer to positions in the current
// list; out-of-range values are a no-op.
func (e *PageEditor) Move(from, to int) bool {
	if from < 0 || from >= len(e.blocks) || to < 0 || to >= len(e.blocks) || from == to {
		return false
	}
	b := e.blocks[from]
	rest := append(e.blocks[:from:from], e.blocks[from+1:]...)
	e.blocks = insertBlock(rest, to, b)
	return true
}

// MoveByID relocates a block identified by ID to a target index.
func (e *PageEditor) MoveByID(id string, to int) bool {
	return e.Move(e.indexOf(id), to)
}

// UpdateProps replaces a block's props wholesale. Callers always send the
// complete new map (the onChange contract), so no merge happens here.
func (e *PageEditor) UpdateProps(id string, props Props) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.blocks[i].Props = props.Clone()
	return true
}

// ReplaceAll swaps the whole list (template application) and clears the
// selection.
func (e *PageEditor) ReplaceAll(blocks []Block) {
	e.blocks = CloneBlocks(blocks)
	e.selected = ""
}

// --- drag gesture lifecycle -------------------------------------------------

// PointerDown arms a drag with its payload at the press position. Nothing
// moves until the pointer travels past DragThreshold.
func (e *PageEditor) PointerDown(payload DropPayload, x, y float64) {
	e.drag = dragState{phase: dragPending, payload: payload, originX: x, originY: y}
}

// PointerMove advances the gesture. It returns true once the drag is active,
// i.e. the pointer has left the deadzone; before that the gesture is still a
// potential click.
func (e *PageEditor) PointerMove(x, y float64) bool {
	switch e.drag.phase {
	case dragPending:
		if math.Hypot(x-e.drag.originX, y-e.drag.originY) >= DragThreshold {
			e.drag.phase = dragActive
		}
	case dragActive:
		return true
	}
	return e.drag.phase == dragActive
}

// Dragging reports whether a drag is past the threshold.
func (e *PageEditor) Dragging() bool { return e.drag.phase == dragActive }

// PointerUp ends the gesture. A pointer that never crossed the threshold is
// a click: the payload's block gets selected and the list is untouched. An
// active drag commits exactly one mutation, resolved against the drop index.
// Unrecognized payloads and drops outside a valid target change nothing.
func (e *PageEditor) PointerUp(dropIndex int) (changed bool) {
	drag := e.drag
	e.drag = dragState{}
	switch drag.phase {
	case dragPending:
		if drag.payload.Kind == PayloadReorder {
			e.Select(drag.payload.BlockID)
		}
		return false
	case dragActive:
		if dropIndex < 0 {
			return false
		}
		switch drag.payload.Kind {
		case PayloadReorder:
			return e.MoveByID(drag.payload.BlockID, clampIndex(dropIndex, len(e.blocks)-1))
		case PayloadPalette:
			_, err := e.InsertAt(drag.payload.BlockType, dropIndex)
			return err == nil
		}
	}
	return false
}

// CancelDrag aborts the gesture without mutating anything (pointer left the
// canvas, escape pressed).
func (e *PageEditor) CancelDrag() { e.drag = dragState{} }

// ResolveDropIndex picks the drop slot by closest-center collision: given
// the vertical centers of the rendered sibling blocks, the target index is
// the one whose center is nearest the pointer. An empty canvas drops at 0.
func ResolveDropIndex(centers []float64, pointerY float64) int {
	if len(centers) == 0 {
		return 0
	}
	best, bestDist := 0, math.Inf(1)
	for i, c := range centers {
		if d := math.Abs(pointerY - c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (e *PageEditor) blockByID(id string) (Block, bool) {
	if i := e.indexOf(id); i >= 0 {
		return e.blocks[i].Clone(), true
	}
	return Block{}, false
}

func (e *PageEditor) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, b := range e.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func insertBlock(blocks []Block, at int, b Block) []Block {
	at = clampIndex(at, len(blocks))
	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks[:at]...)
	out = append(out, b)
	out = append(out, blocks[at:]...)
	return out
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
