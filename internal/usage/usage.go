package usage

import (
	"sync"
	"time"
)

// Entry records one successful analysis.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Language   string    `json:"language"`
	Mode       string    `json:"mode"`
	DurationMs int64     `json:"durationMs"`
	Tokens     int       `json:"tokens"`
}

// Snapshot is a point-in-time view of session statistics.
type Snapshot struct {
	Analyses    int            `json:"analyses"`
	Tokens      int            `json:"tokens"`
	Languages   map[string]int `json:"languages"`
	TopLanguage string         `json:"topLanguage,omitempty"`
	History     []Entry        `json:"history"`
}

// Tracker accumulates session statistics. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	tokens  int
	history []Entry
}

// NewTracker returns an empty session tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record adds one successful analysis to the session tally. Callers must not
// record validation failures or failed remote calls.
func (t *Tracker) Record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens += e.Tokens
	t.history = append(t.history, e)
}

// Count returns the number of analyses recorded this session.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.history)
}

// Snapshot returns a copy of the current session statistics.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		Analyses:  len(t.history),
		Tokens:    t.tokens,
		Languages: make(map[string]int),
		History:   make([]Entry, len(t.history)),
	}
	copy(s.History, t.history)

	for _, e := range t.history {
		s.Languages[e.Language]++
	}
	top, best := "", 0
	for lang, n := range s.Languages {
		if n > best || (n == best && lang < top) {
			top, best = lang, n
		}
	}
	s.TopLanguage = top
	return s
}

// Reset clears all session statistics.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens = 0
	t.history = nil
}
