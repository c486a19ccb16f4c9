package router

// Entry is one visited location and the scroll position it was left at.
type Entry struct {
	Location Location
	Saved    *Position
}

// History is a back/forward list of visited locations with a cursor.
type History struct {
	entries []Entry
	index   int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{
		entries: make([]Entry, 0),
		index:   -1,
	}
}

// Reset replaces the history with a single entry.
func (h *History) Reset(location Location) {
	h.entries = append(h.entries[:0], Entry{Location: location})
	h.index = 0
}

// Push drops any forward entries and appends location as the current entry.
func (h *History) Push(location Location) {
	h.entries = append(h.entries[:h.index+1], Entry{Location: location})
	h.index = len(h.entries) - 1
}

// Save records where the current entry was left.
func (h *History) Save(position Position) {
	if h.index < 0 {
		return
	}
	saved := position
	h.entries[h.index].Saved = &saved
}

// Current returns the entry under the cursor.
func (h *History) Current() (Entry, bool) {
	if h.index < 0 {
		return Entry{}, false
	}
	return copyEntry(h.entries[h.index]), true
}

// Peek returns the entry delta steps from the cursor without moving.
func (h *History) Peek(delta int) (Entry, bool) {
	target := h.index + delta
	if h.index < 0 || target < 0 || target >= len(h.entries) {
		return Entry{}, false
	}
	return copyEntry(h.entries[target]), true
}

// Move shifts the cursor delta steps and returns the new current entry.
func (h *History) Move(delta int) (Entry, bool) {
	entry, ok := h.Peek(delta)
	if !ok {
		return Entry{}, false
	}
	h.index += delta
	return entry, true
}

// Seek moves the cursor to the absolute index and returns that entry.
func (h *History) Seek(index int) (Entry, bool) {
	if index < 0 || index >= len(h.entries) {
		return Entry{}, false
	}
	h.index = index
	return copyEntry(h.entries[index]), true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the cursor position, or -1 when empty.
func (h *History) Index() int {
	return h.index
}

func copyEntry(entry Entry) Entry {
	if entry.Saved != nil {
		saved := *entry.Saved
		entry.Saved = &saved
	}
	return entry
}
