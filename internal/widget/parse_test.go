package widget

import (
	"fmt"
	"testing"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected uint32
	}{
		{"Count with activity", "(3) Discord | #general", 3},
		{"Large count", "(120) Discord", 120},
		{"Zero", "(0) Discord", 0},
		{"No leading paren", "no leading paren", 0},
		{"Plain title", "Discord | #general", 0},
		{"Non numeric", "(abc) text", 0},
		{"Unterminated", "(5 unterminated", 0},
		{"Empty parens", "() Discord", 0},
		{"Negative", "(-2) Discord", 0},
		{"Explicit plus sign", "(+5) Discord", 0},
		{"Overflow", "(4294967296) Discord", 0},
		{"Max uint32", "(4294967295) Discord", 4294967295},
		{"Paren not at start", "Discord (3)", 0},
		{"Inner space", "( 3) Discord", 0},
		{"Empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCount(tt.title); got != tt.expected {
				t.Errorf("ParseCount(%q) = %d, want %d", tt.title, got, tt.expected)
			}
		})
	}
}

func TestParseCountRoundTrip(t *testing.T) {
	for _, n := range []uint32{0, 1, 9, 10, 99, 1000, 65535, 4294967295} {
		title := fmt.Sprintf("(%d) rest text", n)
		if got := ParseCount(title); got != n {
			t.Errorf("ParseCount(%q) = %d, want %d", title, got, n)
		}
	}
}
