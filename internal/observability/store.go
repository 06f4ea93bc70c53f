package observability

import "sync"

// Trace is one API request. Mode is the view mode once the request was
// served, so a mode switch shows up on the PUT that caused it.
type Trace struct {
	ID         string `json:"id"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Mode       string `json:"mode,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Bytes      int    `json:"bytes"`
	DurationMs int64  `json:"duration_ms"`
	Timestamp  int64  `json:"timestamp"`
	ClientIP   string `json:"client_ip,omitempty"`
}

// Store keeps the most recent limit entries, oldest first. It is safe for
// concurrent use.
type Store[T any] struct {
	mu      sync.Mutex
	limit   int
	entries []T
}

func NewStore[T any](limit int) *Store[T] {
	if limit <= 0 {
		limit = 1000
	}
	return &Store[T]{
		limit:   limit,
		entries: make([]T, 0, limit),
	}
}

func NewTraceStore(limit int) *Store[Trace] {
	return NewStore[Trace](limit)
}

func NewAlertStore(limit int) *Store[Alert] {
	return NewStore[Alert](limit)
}

func (s *Store[T]) Add(entry T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == s.limit {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, entry)
}

func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.entries))
	out = append(out, s.entries...)
	return out
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store[T]) Limit() int {
	return s.limit
}
