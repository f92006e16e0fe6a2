package win32

import (
	"runtime"
	"testing"

	"titlewatch/pkg/window"
)

func TestEnumeratorInterface(t *testing.T) {
	var _ window.Enumerator = (*Enumerator)(nil)
}

func TestGetDisplayServer(t *testing.T) {
	e := &Enumerator{}
	if ds := e.GetDisplayServer(); ds != "win32" {
		t.Errorf("GetDisplayServer() = %s, want win32", ds)
	}
}

func TestVisitTitles(t *testing.T) {
	e, err := NewEnumerator()
	if runtime.GOOS != "windows" {
		if err == nil {
			t.Fatal("NewEnumerator() succeeded off windows")
		}
		return
	}
	if err != nil {
		t.Fatalf("NewEnumerator() error: %v", err)
	}
	defer e.Close()

	count := 0
	err = e.VisitTitles(func(title string) bool {
		if title == "" {
			t.Error("VisitTitles() reported an empty title")
		}
		count++
		return true
	})
	if err != nil {
		t.Fatalf("VisitTitles() error: %v", err)
	}
	t.Logf("Visited %d titled windows", count)
}

func TestVisitTitlesStopEarly(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("win32 enumeration requires windows")
	}

	e, err := NewEnumerator()
	if err != nil {
		t.Fatalf("NewEnumerator() error: %v", err)
	}

	visited := 0
	err = e.VisitTitles(func(string) bool {
		visited++
		return false
	})
	if err != nil {
		t.Errorf("VisitTitles() error after early stop: %v", err)
	}
	if visited > 1 {
		t.Errorf("visited = %d after early stop, want at most 1", visited)
	}
}
