package scanner

import (
	"errors"
	"sync"
	"testing"
)

type mockEnumerator struct {
	titles   []string
	visitErr error
	visits   int
	visited  int
}

func (m *mockEnumerator) VisitTitles(visit func(title string) bool) error {
	m.visits++
	if m.visitErr != nil {
		return m.visitErr
	}
	for _, title := range m.titles {
		m.visited++
		if !visit(title) {
			return nil
		}
	}
	return nil
}

func (m *mockEnumerator) IsAvailable() bool        { return true }
func (m *mockEnumerator) GetDisplayServer() string { return "mock" }
func (m *mockEnumerator) Close() error             { return nil }

func TestFindWindowTitle(t *testing.T) {
	titles := []string{
		"Terminal",
		"",
		"(2) Discord | #general",
		"Firefox",
		"(5) Discord | #random",
	}

	tests := []struct {
		name     string
		policy   MatchPolicy
		keyword  string
		expected string
		found    bool
	}{
		{"Last match wins", LastMatch, "Discord", "(5) Discord | #random", true},
		{"First match wins", FirstMatch, "Discord", "(2) Discord | #general", true},
		{"Single match", LastMatch, "Firefox", "Firefox", true},
		{"Case sensitive", LastMatch, "discord", "", false},
		{"No match", LastMatch, "Slack", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&mockEnumerator{titles: titles}, tt.policy)

			title, found := s.FindWindowTitle(tt.keyword)
			if found != tt.found {
				t.Errorf("FindWindowTitle(%q) found = %v, want %v", tt.keyword, found, tt.found)
			}
			if title != tt.expected {
				t.Errorf("FindWindowTitle(%q) = %q, want %q", tt.keyword, title, tt.expected)
			}
		})
	}
}

func TestFirstMatchStopsEnumeration(t *testing.T) {
	mock := &mockEnumerator{titles: []string{"a Discord", "b Discord", "c"}}
	s := New(mock, FirstMatch)

	s.FindWindowTitle("Discord")
	if mock.visited != 1 {
		t.Errorf("visited = %d, want 1", mock.visited)
	}
}

func TestLastMatchVisitsAll(t *testing.T) {
	mock := &mockEnumerator{titles: []string{"a Discord", "b Discord", "c"}}
	s := New(mock, LastMatch)

	s.FindWindowTitle("Discord")
	if mock.visited != 3 {
		t.Errorf("visited = %d, want 3", mock.visited)
	}
}

func TestEnumerationFailure(t *testing.T) {
	mock := &mockEnumerator{
		titles:   []string{"(1) Discord"},
		visitErr: errors.New("EnumWindows failed"),
	}
	s := New(mock, LastMatch)

	title, found := s.FindWindowTitle("Discord")
	if found || title != "" {
		t.Errorf("FindWindowTitle() = (%q, %v), want no match on failure", title, found)
	}
	if s.Err() == nil {
		t.Error("Err() = nil after failed scan")
	}

	mock.visitErr = nil
	if _, found := s.FindWindowTitle("Discord"); !found {
		t.Error("FindWindowTitle() found nothing after recovery")
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v after successful scan, want nil", s.Err())
	}
}

func TestScanResultNotCarriedOver(t *testing.T) {
	mock := &mockEnumerator{titles: []string{"(3) Discord"}}
	s := New(mock, LastMatch)

	if _, found := s.FindWindowTitle("Discord"); !found {
		t.Fatal("first scan found nothing")
	}

	mock.titles = []string{"Terminal"}
	title, found := s.FindWindowTitle("Discord")
	if found || title != "" {
		t.Errorf("second scan = (%q, %v), want stale result cleared", title, found)
	}
}

// interleavedEnumerator hands out titles from a shared list while yielding
// between callbacks, so concurrent scans overlap.
type interleavedEnumerator struct {
	titles []string
	step   chan struct{}
}

func (e *interleavedEnumerator) VisitTitles(visit func(title string) bool) error {
	for _, title := range e.titles {
		<-e.step
		if !visit(title) {
			return nil
		}
	}
	return nil
}

func (e *interleavedEnumerator) IsAvailable() bool        { return true }
func (e *interleavedEnumerator) GetDisplayServer() string { return "mock" }
func (e *interleavedEnumerator) Close() error             { return nil }

func TestConcurrentScansAreIsolated(t *testing.T) {
	e := &interleavedEnumerator{
		titles: []string{"(1) Discord", "Slack | 4 new", "Terminal"},
		step:   make(chan struct{}),
	}

	discord := New(e, LastMatch)
	slack := New(e, LastMatch)

	var wg sync.WaitGroup
	var discordTitle, slackTitle string
	var discordFound, slackFound bool

	wg.Add(2)
	go func() {
		defer wg.Done()
		discordTitle, discordFound = discord.FindWindowTitle("Discord")
	}()
	go func() {
		defer wg.Done()
		slackTitle, slackFound = slack.FindWindowTitle("Slack")
	}()

	// two scans of three windows each
	for i := 0; i < 2*len(e.titles); i++ {
		e.step <- struct{}{}
	}
	wg.Wait()

	if !discordFound || discordTitle != "(1) Discord" {
		t.Errorf("discord scan = (%q, %v), want (1) Discord", discordTitle, discordFound)
	}
	if !slackFound || slackTitle != "Slack | 4 new" {
		t.Errorf("slack scan = (%q, %v), want Slack | 4 new", slackTitle, slackFound)
	}
}

func TestParseMatchPolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected MatchPolicy
		wantErr  bool
	}{
		{"first", FirstMatch, false},
		{"LAST", LastMatch, false},
		{"", LastMatch, false},
		{"middle", LastMatch, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			policy, err := ParseMatchPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMatchPolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if policy != tt.expected {
				t.Errorf("ParseMatchPolicy(%q) = %v, want %v", tt.input, policy, tt.expected)
			}
		})
	}
}
