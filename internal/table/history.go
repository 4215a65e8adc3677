package table

// MaxHistory bounds the undo history. Once full, each new snapshot drops
// the oldest entry, so very long edit sessions can still undo the most
// recent MaxHistory-1 steps but never back to the absolute original.
const MaxHistory = 50

// History is a linear sequence of model snapshots with a cursor. Saving
// while the cursor sits before the newest entry discards the redo branch;
// there is no tree of states.
type History struct {
	entries []Model
	index   int
}

// NewHistory returns an empty history with the cursor parked at -1.
func NewHistory() *History {
	return &History{index: -1}
}

// Save snapshots m as the new current entry. The snapshot is a deep copy;
// later edits to m cannot corrupt it.
func (h *History) Save(m Model) {
	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, m.Clone())
	h.index++
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[1:]
		h.index--
	}
}

// Undo steps the cursor back and returns a deep copy of the entry it lands
// on. Returns false without moving when the cursor is at the oldest entry
// or the history is empty.
func (h *History) Undo() (Model, bool) {
	if h.index <= 0 {
		return Model{}, false
	}
	h.index--
	return h.entries[h.index].Clone(), true
}

// Redo steps the cursor forward and returns a deep copy of the entry it
// lands on. Returns false without moving when the cursor is already at the
// newest entry.
func (h *History) Redo() (Model, bool) {
	if h.index >= len(h.entries)-1 {
		return Model{}, false
	}
	h.index++
	return h.entries[h.index].Clone(), true
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Position returns the cursor index, -1 when empty.
func (h *History) Position() int {
	return h.index
}

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool {
	return h.index < len(h.entries)-1
}
