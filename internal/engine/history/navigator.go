package history

// Navigator pages a capture through history without mutating committed
// entries. The first time a position is visited its text is copied into a
// sparse overlay, keyed by steps back from the newest entry; edits made
// while viewing an entry are stored back into that copy on the next move.
// A Navigator lives for one capture and is discarded with it.
type Navigator struct {
	ring   *Ring
	window int
	pos    int // [floor, ring.Len()]; ring.Len() means fresh input
	copies map[int]string
	fresh  string
}

// NewNavigator creates a navigator positioned at the fresh-input slot.
// The window bounds how many entries ArrowUp can page back through; a
// non-positive window falls back to the ring's capacity.
func NewNavigator(ring *Ring, window int) *Navigator {
	if window <= 0 {
		window = ring.Capacity()
	}
	return &Navigator{
		ring:   ring,
		window: window,
		pos:    ring.Len(),
		copies: make(map[int]string),
	}
}

// Pos returns the current history position; ring.Len() means fresh input.
func (n *Navigator) Pos() int {
	return n.pos
}

// OnHistory returns true when a historical entry is being viewed.
func (n *Navigator) OnHistory() bool {
	return n.pos < n.ring.Len()
}

// Up pages one entry back. current is the text being displayed before the
// move; it is preserved in the slot being left. Returns the text to
// display and false when already at the navigation floor.
func (n *Navigator) Up(current string) (string, bool) {
	floor := n.ring.Len() - n.window
	if floor < 0 {
		floor = 0
	}
	if n.pos-1 < floor {
		return "", false
	}

	n.store(current)
	n.pos--
	return n.load(), true
}

// Down pages one entry forward, back toward fresh input. Returns the text
// to display and false when already on the fresh-input slot.
func (n *Navigator) Down(current string) (string, bool) {
	if n.pos >= n.ring.Len() {
		return "", false
	}

	n.store(current)
	n.pos++
	return n.load(), true
}

// store saves the displayed text into the slot being left.
func (n *Navigator) store(current string) {
	if n.pos == n.ring.Len() {
		n.fresh = current
		return
	}
	n.copies[n.ring.Len()-n.pos] = current
}

// load returns the text for the current position: the fresh input, an
// existing overlay copy, or a fresh copy of the committed entry.
func (n *Navigator) load() string {
	if n.pos == n.ring.Len() {
		return n.fresh
	}

	back := n.ring.Len() - n.pos
	if text, ok := n.copies[back]; ok {
		return text
	}
	text, _ := n.ring.At(n.pos)
	n.copies[back] = text
	return text
}
