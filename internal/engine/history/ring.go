// Package history provides the submission history: a fixed-capacity ring
// of previously entered lines and the per-capture navigation overlay used
// while paging through them.
package history

// DefaultCapacity is used when a ring is constructed with a non-positive
// capacity.
const DefaultCapacity = 100

// Ring is a fixed-capacity, insertion-ordered collection of submitted
// lines. When full, appending evicts the oldest entry. Entries are
// immutable once appended; navigation edits live in a Navigator overlay,
// never here.
type Ring struct {
	entries []string
	head    int // index of the oldest entry
	size    int
}

// NewRing creates a ring with the given capacity, fixed for its lifetime.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{entries: make([]string, capacity)}
}

// Append adds a submitted line as the newest entry, evicting the oldest
// when at capacity.
func (r *Ring) Append(text string) {
	if r.size < len(r.entries) {
		r.entries[(r.head+r.size)%len(r.entries)] = text
		r.size++
		return
	}

	r.entries[r.head] = text
	r.head = (r.head + 1) % len(r.entries)
}

// At returns the entry at position i, where 0 is the oldest retained
// entry and Len()-1 the most recent.
func (r *Ring) At(i int) (string, bool) {
	if i < 0 || i >= r.size {
		return "", false
	}
	return r.entries[(r.head+i)%len(r.entries)], true
}

// Len returns the number of retained entries.
func (r *Ring) Len() int {
	return r.size
}

// Capacity returns the fixed capacity.
func (r *Ring) Capacity() int {
	return len(r.entries)
}

// All returns the retained entries, oldest first.
func (r *Ring) All() []string {
	out := make([]string, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.entries[(r.head+i)%len(r.entries)])
	}
	return out
}
