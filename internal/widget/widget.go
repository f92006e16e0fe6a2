package widget

import (
	"sync"
	"time"
)

const (
	DefaultRefreshInterval = 2 * time.Second
	DefaultFilterKeyword   = "Discord"
	DefaultLabel           = "DISC"
)

// Config is fixed for the lifetime of a widget
type Config struct {
	Enabled         bool
	RefreshInterval time.Duration
	LabelMode       LabelMode
	FilterKeyword   string
	Label           string
}

// DefaultConfig returns the stock notification widget settings
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		RefreshInterval: DefaultRefreshInterval,
		LabelMode:       LabelIconAndText,
		FilterKeyword:   DefaultFilterKeyword,
		Label:           DefaultLabel,
	}
}

// TitleFinder looks up the title of a window containing keyword
type TitleFinder interface {
	FindWindowTitle(keyword string) (string, bool)
}

// Snapshot is a copy of a widget's observed state
type Snapshot struct {
	Keyword         string    `json:"keyword"`
	Count           uint32    `json:"count"`
	Matched         bool      `json:"matched"`
	Title           string    `json:"title,omitempty"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
	Refreshes       uint64    `json:"refreshes"`
	Output          string    `json:"output"`
	ShowIcon        bool      `json:"show_icon"`
}

// Option configures a Widget
type Option func(*Widget)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(w *Widget) {
		w.now = now
	}
}

// Widget caches the notification count of one application window and
// rescans at most once per refresh interval.
type Widget struct {
	config Config
	finder TitleFinder
	now    func() time.Time

	mu              sync.Mutex
	lastRefreshedAt time.Time
	lastCount       uint32
	lastTitle       string
	matched         bool
	refreshes       uint64
}

// New creates a widget. The first scan happens once the refresh interval
// has elapsed.
func New(cfg Config, finder TitleFinder, opts ...Option) *Widget {
	w := &Widget{
		config: cfg,
		finder: finder,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.lastRefreshedAt = w.now()
	return w
}

// ShowIcon reports whether the presentation layer should draw an icon
func (w *Widget) ShowIcon() bool {
	return w.config.Enabled && w.config.LabelMode.ShowIcon()
}

// Output is called once per render tick. It refreshes the count when the
// refresh interval has passed and returns the bar text.
func (w *Widget) Output() string {
	if !w.config.Enabled {
		return ""
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if now.Sub(w.lastRefreshedAt) > w.config.RefreshInterval {
		w.refresh(now)
	}

	return Format(w.config.LabelMode, w.config.Label, w.lastCount)
}

// refresh must be called with w.mu held
func (w *Widget) refresh(now time.Time) {
	title, ok := w.finder.FindWindowTitle(w.config.FilterKeyword)
	if ok {
		w.lastCount = ParseCount(title)
		w.lastTitle = title
	} else {
		w.lastCount = 0
		w.lastTitle = ""
	}
	w.matched = ok
	w.lastRefreshedAt = now
	w.refreshes++
}

// Snapshot returns the current state without triggering a refresh
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		Keyword:         w.config.FilterKeyword,
		Count:           w.lastCount,
		Matched:         w.matched,
		Title:           w.lastTitle,
		LastRefreshedAt: w.lastRefreshedAt,
		Refreshes:       w.refreshes,
		ShowIcon:        w.config.LabelMode.ShowIcon(),
	}
	if w.config.Enabled {
		s.Output = Format(w.config.LabelMode, w.config.Label, w.lastCount)
	}
	return s
}
