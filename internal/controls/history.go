package controls

import "github.com/SeamusWaldron/touchcube/internal/cube"

// HistoryDepth is the number of turns that can be undone.
const HistoryDepth = 16

// History is a fixed-depth stack of performed turns, most recent first.
// Empty slots hold cube.None.
type History struct {
	entries [HistoryDepth]cube.Rotation
}

// NewHistory creates an empty history.
func NewHistory() *History {
	h := &History{}
	h.Clear()
	return h
}

// Push records r, discarding the oldest entry when full.
func (h *History) Push(r cube.Rotation) {
	copy(h.entries[1:], h.entries[:HistoryDepth-1])
	h.entries[0] = r
}

// Pop removes and returns the most recent turn, or cube.None.
func (h *History) Pop() cube.Rotation {
	r := h.entries[0]
	copy(h.entries[:HistoryDepth-1], h.entries[1:])
	h.entries[HistoryDepth-1] = cube.None
	return r
}

// Peek returns the most recent turn without removing it.
func (h *History) Peek() cube.Rotation {
	return h.entries[0]
}

// Clear forgets every turn.
func (h *History) Clear() {
	for i := range h.entries {
		h.entries[i] = cube.None
	}
}

// Len counts the leading real turns.
func (h *History) Len() int {
	for i, r := range h.entries {
		if r == cube.None {
			return i
		}
	}
	return HistoryDepth
}

// Entries returns every slot, most recent first.
func (h *History) Entries() [HistoryDepth]cube.Rotation {
	return h.entries
}
