package tracker

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"titlewatch/internal/config"
	"titlewatch/internal/models"
	"titlewatch/internal/widget"
)

// Recorder persists observations and errors
type Recorder interface {
	CreateObservation(obs *models.Observation) error
	CreateErrorLog(errorLog *models.ErrorLog) error
}

// ScanErrorSource exposes the error of the most recent window scan
type ScanErrorSource interface {
	Err() error
}

// Service drives the widget on the bar's render tick
type Service struct {
	config        *config.Config
	widget        *widget.Widget
	scans         ScanErrorSource
	recorder      Recorder
	out           io.Writer
	displayServer string

	mu            sync.Mutex
	stopChan      chan struct{}
	running       bool
	lastOutput    string
	lastRefreshes uint64
	lastRecorded  *models.Observation
}

func NewService(cfg *config.Config, w *widget.Widget, scans ScanErrorSource, recorder Recorder, out io.Writer, displayServer string) *Service {
	return &Service{
		config:        cfg,
		widget:        w,
		scans:         scans,
		recorder:      recorder,
		out:           out,
		displayServer: displayServer,
	}
}

// Start runs the render loop until ctx is done or Stop is called. A stopped
// service can be started again.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("bar is already running")
	}
	s.running = true
	s.stopChan = make(chan struct{})
	stop := s.stopChan
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.stopChan == stop {
			s.running = false
		}
		s.mu.Unlock()
	}()

	log.Printf("Starting bar with %v tick, %v refresh interval, keyword %q",
		s.config.Bar.TickInterval, s.config.Widget.RefreshInterval, s.config.Widget.FilterKeyword)

	ticker := time.NewTicker(s.config.Bar.TickInterval)
	defer ticker.Stop()

	s.tickOnce()

	for {
		select {
		case <-ctx.Done():
			log.Println("Bar stopped by context")
			return ctx.Err()

		case <-stop:
			log.Println("Bar stopped")
			return nil

		case <-ticker.C:
			s.tickOnce()
		}
	}
}

func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		close(s.stopChan)
		s.running = false
	}
}

func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Snapshot returns the widget state for status reporting
func (s *Service) Snapshot() widget.Snapshot {
	return s.widget.Snapshot()
}

// tickOnce renders one frame: the widget output is written when it
// changes, and every refresh is checked for something worth recording.
func (s *Service) tickOnce() {
	output := s.widget.Output()
	snap := s.widget.Snapshot()

	s.mu.Lock()
	changed := output != s.lastOutput
	s.lastOutput = output
	refreshed := snap.Refreshes != s.lastRefreshes
	s.lastRefreshes = snap.Refreshes
	s.mu.Unlock()

	if changed && s.out != nil {
		if _, err := fmt.Fprintln(s.out, output); err != nil {
			log.Printf("Failed to write bar output: %v", err)
		}
	}

	if refreshed {
		s.afterRefresh(snap)
	}
}

func (s *Service) afterRefresh(snap widget.Snapshot) {
	if s.scans != nil {
		if err := s.scans.Err(); err != nil {
			s.storeError("scan", snap.Keyword, fmt.Errorf("window scan failed: %w", err))
		}
	}

	s.mu.Lock()
	prev := s.lastRecorded
	s.mu.Unlock()

	if prev != nil && prev.Count == snap.Count && prev.Matched == snap.Matched {
		return
	}

	obs := &models.Observation{
		Timestamp:     snap.LastRefreshedAt,
		Keyword:       snap.Keyword,
		Title:         snap.Title,
		Count:         snap.Count,
		Matched:       snap.Matched,
		DisplayServer: s.displayServer,
	}

	if s.recorder != nil {
		if err := s.recorder.CreateObservation(obs); err != nil {
			s.storeError("store", snap.Keyword, fmt.Errorf("failed to save observation: %w", err))
			return
		}
	}

	log.Printf("Observed: %s count=%d matched=%v", snap.Keyword, snap.Count, snap.Matched)

	s.mu.Lock()
	s.lastRecorded = obs
	s.mu.Unlock()
}

func (s *Service) storeError(source, keyword string, err error) {
	if s.recorder == nil {
		log.Printf("Error: %v", err)
		return
	}

	errorLog := &models.ErrorLog{
		Timestamp: time.Now(),
		Keyword:   keyword,
		Source:    source,
		ErrorMsg:  err.Error(),
	}

	if dbErr := s.recorder.CreateErrorLog(errorLog); dbErr != nil {
		log.Printf("Failed to store error in database: %v (original error: %v)", dbErr, err)
	} else {
		log.Printf("Error logged to database: %v", err)
	}
}
