package builder

// History is the per-page undo/redo stack: full block-list snapshots plus a
// cursor. Structural operations (add, delete, reorder, move, template-apply)
// push a new snapshot; continuous operations (any prop-value change) replace
// the snapshot at the cursor so a typing session costs one undo step instead
// of one per keystroke. Snapshots are deep-copied both on the way in and on
// the way out, so no caller can mutate history from outside.
type History struct {
	snapshots [][]Block
	index     int
}

// NewHistory creates a one-entry stack holding the page's initial blocks.
func NewHistory(initial []Block) *History {
	return &History{snapshots: [][]Block{CloneBlocks(initial)}}
}

// Push records a structural change: any redo branch past the cursor is
// discarded, the new state is appended and the cursor advances to it.
func (h *History) Push(blocks []Block) {
	h.snapshots = append(h.snapshots[:h.index+1], CloneBlocks(blocks))
	h.index = len(h.snapshots) - 1
}

// ReplaceHead records a continuous change by overwriting the snapshot at the
// cursor. The stack does not grow and the redo branch, if any, survives.
func (h *History) ReplaceHead(blocks []Block) {
	h.snapshots[h.index] = CloneBlocks(blocks)
}

// Undo steps the cursor back and returns the now-current state. The second
// return is false when already at the oldest snapshot.
func (h *History) Undo() ([]Block, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return CloneBlocks(h.snapshots[h.index]), true
}

// Redo steps the cursor forward and returns the now-current state. The
// second return is false when already at the newest snapshot.
func (h *History) Redo() ([]Block, bool) {
	if h.index >= len(h.snapshots)-1 {
		return nil, false
	}
	h.index++
	return CloneBlocks(h.snapshots[h.index]), true
}

// Current returns a copy of the snapshot at the cursor.
func (h *History) Current() []Block {
	return CloneBlocks(h.snapshots[h.index])
}

// CanUndo reports whether an undo step exists.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool { return h.index < len(h.snapshots)-1 }

// Index returns the cursor position. Zero means nothing has changed since
// load, which is what autosave checks before firing.
func (h *History) Index() int { return h.index }

// Len returns the number of snapshots on the stack.
func (h *History) Len() int { return len(h.snapshots) }
