package chooser

import "sync"

// DefaultLimit caps how many results a session surfaces at once.
const DefaultLimit = 20

// Session is the interactive narrowing state the event loop drives:
// typed runes extend the query, the cursor walks the ranked results,
// Selected reports the current candidate.
type Session struct {
	mu sync.Mutex

	entries []Entry
	filter  *Filter
	limit   int

	query   []rune
	cursor  int
	results []Result
}

// NewSession creates a session over a fixed entry list.
func NewSession(entries []Entry) *Session {
	s := &Session{
		entries: entries,
		filter:  NewFilter(),
		limit:   DefaultLimit,
	}
	s.refreshLocked()
	return s
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.query)
}

// Type appends a rune to the query and re-ranks.
func (s *Session) Type(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = append(s.query, r)
	s.refreshLocked()
}

// Backspace removes the last query rune and re-ranks. No-op on an
// empty query.
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.query) == 0 {
		return
	}
	s.query = s.query[:len(s.query)-1]
	s.refreshLocked()
}

// Move shifts the cursor by delta, clamped to the result range.
func (s *Session) Move(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor += delta
	s.clampLocked()
}

// Cursor returns the selected result index.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Results returns the current ranked results.
func (s *Session) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Selected returns the entry under the cursor.
func (s *Session) Selected() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return Entry{}, false
	}
	return s.results[s.cursor].Entry, true
}

// refreshLocked re-ranks against the current query and keeps the
// cursor inside the new result range. Caller must hold the lock.
func (s *Session) refreshLocked() {
	s.results = s.filter.Search(s.entries, string(s.query), s.limit)
	s.clampLocked()
}

func (s *Session) clampLocked() {
	if s.cursor < 0 {
		s.cursor = 0
	}
	if max := len(s.results) - 1; s.cursor > max {
		if max < 0 {
			max = 0
		}
		s.cursor = max
	}
}
