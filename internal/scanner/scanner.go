package scanner

import (
	"fmt"
	"strings"
	"sync"

	"titlewatch/pkg/window"
)

// MatchPolicy decides which window wins when several titles match
type MatchPolicy int

const (
	// LastMatch visits every window and keeps the last match
	LastMatch MatchPolicy = iota
	// FirstMatch stops enumerating at the first match
	FirstMatch
)

func (p MatchPolicy) String() string {
	switch p {
	case FirstMatch:
		return "first"
	default:
		return "last"
	}
}

// ParseMatchPolicy converts "first" or "last" into a MatchPolicy
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last", "":
		return LastMatch, nil
	case "first":
		return FirstMatch, nil
	default:
		return LastMatch, fmt.Errorf("invalid match policy: %s (valid: first, last)", s)
	}
}

// Scanner finds a window whose title contains a keyword
type Scanner struct {
	enumerator window.Enumerator
	policy     MatchPolicy

	mu      sync.Mutex
	lastErr error
}

// New creates a scanner over the given enumerator
func New(enumerator window.Enumerator, policy MatchPolicy) *Scanner {
	return &Scanner{
		enumerator: enumerator,
		policy:     policy,
	}
}

// result receives the match from inside the visit callback. Each scan owns
// its own result.
type result struct {
	mu    sync.Mutex
	title string
	found bool
}

func (r *result) store(title string) {
	r.mu.Lock()
	r.title = title
	r.found = true
	r.mu.Unlock()
}

func (r *result) load() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.title, r.found
}

// Scan enumerates all windows and returns the matching title. Matching is
// case-sensitive substring containment.
func (s *Scanner) Scan(keyword string) (string, bool, error) {
	var res result

	err := s.enumerator.VisitTitles(func(title string) bool {
		if title == "" || !strings.Contains(title, keyword) {
			return true
		}
		res.store(title)
		return s.policy != FirstMatch
	})

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		return "", false, err
	}

	title, found := res.load()
	return title, found, nil
}

// FindWindowTitle is Scan with enumeration failures reported as no match
func (s *Scanner) FindWindowTitle(keyword string) (string, bool) {
	title, found, err := s.Scan(keyword)
	if err != nil {
		return "", false
	}
	return title, found
}

// Err returns the error from the most recent scan, if any
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
