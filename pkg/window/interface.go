package window

// Enumerator walks the top-level windows of the running desktop session
type Enumerator interface {
	// VisitTitles calls visit once for every top-level window that has a
	// non-empty title, in the order the platform reports them. Enumeration
	// stops early when visit returns false.
	VisitTitles(visit func(title string) bool) error

	// IsAvailable checks if this enumerator can run on the current system
	IsAvailable() bool

	// GetDisplayServer returns the platform name ("win32", "x11" or "wayland")
	GetDisplayServer() string

	// Close cleans up any resources used by the enumerator
	Close() error
}

// Titles collects every title reported by e
func Titles(e Enumerator) ([]string, error) {
	var titles []string
	err := e.VisitTitles(func(title string) bool {
		titles = append(titles, title)
		return true
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}
