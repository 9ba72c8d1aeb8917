// Package complete provides pluggable autocompletion for line capture.
// A Provider maps the current buffer text to candidate replacements; a
// Session cycles through one provider invocation's candidates.
package complete

// Provider supplies completion candidates for the current buffer text.
// Returning an empty slice means no completion applies.
type Provider interface {
	Provide(current string) []string
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(current string) []string

// Provide calls f.
func (f ProviderFunc) Provide(current string) []string {
	return f(current)
}

// Session cycles through the candidates from a single provider call. The
// snapshot keeps the pre-completion text so cancelling can restore it.
type Session struct {
	candidates []string
	index      int
	snapshot   string
}

// Begin invokes the provider against the current text and starts a cycle
// session on the result. Returns false when the provider yields no
// candidates.
func Begin(p Provider, current string) (*Session, bool) {
	if p == nil {
		return nil, false
	}
	candidates := p.Provide(current)
	if len(candidates) == 0 {
		return nil, false
	}
	return &Session{candidates: candidates, snapshot: current}, true
}

// Current returns the candidate the session is positioned on.
func (s *Session) Current() string {
	return s.candidates[s.index]
}

// Next advances to the following candidate, wrapping past the last back
// to the first, and returns it.
func (s *Session) Next() string {
	s.index = (s.index + 1) % len(s.candidates)
	return s.candidates[s.index]
}

// Snapshot returns the buffer text captured when the session began.
func (s *Session) Snapshot() string {
	return s.snapshot
}

// Len returns the candidate count.
func (s *Session) Len() int {
	return len(s.candidates)
}
