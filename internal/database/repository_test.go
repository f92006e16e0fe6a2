package database

import (
	"path/filepath"
	"testing"
	"time"

	"titlewatch/internal/models"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := Connect(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Skipf("sqlite unavailable (cgo disabled?): %v", err)
	}

	return NewRepository(db)
}

func TestObservationLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, count := range []uint32{0, 2, 5} {
		obs := &models.Observation{
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			Keyword:       "Discord",
			Title:         "Discord",
			Count:         count,
			Matched:       true,
			DisplayServer: "x11",
		}
		if err := repo.CreateObservation(obs); err != nil {
			t.Fatalf("CreateObservation() error: %v", err)
		}
	}
	if err := repo.CreateObservation(&models.Observation{
		Timestamp:     base.Add(90 * time.Second),
		Keyword:       "Slack",
		DisplayServer: "x11",
	}); err != nil {
		t.Fatalf("CreateObservation() error: %v", err)
	}

	observations, err := repo.GetObservationsSince("Discord", base.Add(30*time.Second))
	if err != nil {
		t.Fatalf("GetObservationsSince() error: %v", err)
	}
	if len(observations) != 2 {
		t.Fatalf("GetObservationsSince() returned %d rows, want 2", len(observations))
	}
	if observations[0].Count != 2 || observations[1].Count != 5 {
		t.Errorf("counts = %d, %d, want 2, 5", observations[0].Count, observations[1].Count)
	}

	all, err := repo.GetObservationsSince("", base)
	if err != nil {
		t.Fatalf("GetObservationsSince() error: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("GetObservationsSince(all) returned %d rows, want 4", len(all))
	}

	prev, err := repo.GetLatestBefore("Discord", base.Add(30*time.Second))
	if err != nil {
		t.Fatalf("GetLatestBefore() error: %v", err)
	}
	if prev == nil || prev.Count != 0 {
		t.Errorf("GetLatestBefore() = %+v, want the first observation", prev)
	}

	latest, err := repo.GetLatest()
	if err != nil {
		t.Fatalf("GetLatest() error: %v", err)
	}
	if latest == nil || latest.Count != 5 {
		t.Errorf("GetLatest() = %+v, want count 5", latest)
	}

	deleted, err := repo.DeleteOldObservations(base.Add(30 * time.Second))
	if err != nil {
		t.Fatalf("DeleteOldObservations() error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteOldObservations() = %d, want 1", deleted)
	}
}

func TestEmptyRepository(t *testing.T) {
	repo := newTestRepository(t)

	latest, err := repo.GetLatest()
	if err != nil {
		t.Fatalf("GetLatest() error: %v", err)
	}
	if latest != nil {
		t.Errorf("GetLatest() = %+v on empty database, want nil", latest)
	}

	prev, err := repo.GetLatestBefore("Discord", time.Now())
	if err != nil || prev != nil {
		t.Errorf("GetLatestBefore() = %+v, %v, want nil, nil", prev, err)
	}
}

func TestErrorLogs(t *testing.T) {
	repo := newTestRepository(t)
	now := time.Now()

	for _, msg := range []string{"EnumWindows failed", "x11 connection is closed"} {
		if err := repo.CreateErrorLog(&models.ErrorLog{Timestamp: now, ErrorMsg: msg}); err != nil {
			t.Fatalf("CreateErrorLog() error: %v", err)
		}
	}

	count, err := repo.CountErrorsSince(now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountErrorsSince() error: %v", err)
	}
	if count != 2 {
		t.Errorf("CountErrorsSince() = %d, want 2", count)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	count, _ = repo.CountErrorsSince(now.Add(-time.Minute))
	if count != 0 {
		t.Errorf("CountErrorsSince() after Clear() = %d, want 0", count)
	}
}
