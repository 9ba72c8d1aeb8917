// Package search implements incremental reverse history search: a
// case-insensitive substring scan over the history ring, newest entry
// first, with an offset selecting among repeated hits.
package search

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/dshills/keyline/internal/engine/history"
)

// Search holds the modal reverse-search state for one capture. The query
// itself lives in the capture's line buffer; Search only tracks activity
// and the match offset.
type Search struct {
	ring    *history.Ring
	matcher *search.Matcher
	active  bool
	offset  int
}

// New creates a search over the given ring.
func New(ring *history.Ring) *Search {
	return &Search{
		ring:    ring,
		matcher: search.New(language.Und, search.IgnoreCase),
	}
}

// Begin enters search mode at the nearest match.
func (s *Search) Begin() {
	s.active = true
	s.offset = 0
}

// End leaves search mode and resets the offset.
func (s *Search) End() {
	s.active = false
	s.offset = 0
}

// Active returns true while search mode is on.
func (s *Search) Active() bool {
	return s.active
}

// Offset returns the current match offset: 0 is the most recent match.
func (s *Search) Offset() int {
	return s.offset
}

// Match returns the offset-th hit for query, scanning newest to oldest.
// An empty query matches nothing.
func (s *Search) Match(query string) (string, bool) {
	return s.matchAt(query, s.offset)
}

// Advance moves to the next older hit. The offset only moves if a match
// exists there; otherwise this is a no-op.
func (s *Search) Advance(query string) bool {
	if _, ok := s.matchAt(query, s.offset+1); !ok {
		return false
	}
	s.offset++
	return true
}

// Retreat moves to the next newer hit, stopping at the most recent.
func (s *Search) Retreat() bool {
	if s.offset == 0 {
		return false
	}
	s.offset--
	return true
}

// ResetOffset restarts from the nearest match; called when the query
// changes.
func (s *Search) ResetOffset() {
	s.offset = 0
}

func (s *Search) matchAt(query string, offset int) (string, bool) {
	if query == "" {
		return "", false
	}

	hits := 0
	for i := s.ring.Len() - 1; i >= 0; i-- {
		entry, _ := s.ring.At(i)
		if start, _ := s.matcher.IndexString(entry, query); start < 0 {
			continue
		}
		if hits == offset {
			return entry, true
		}
		hits++
	}
	return "", false
}
