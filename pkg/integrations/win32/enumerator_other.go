//go:build !windows

package win32

import "github.com/pkg/errors"

// ErrUnsupported is returned when the win32 enumerator is used off Windows
var ErrUnsupported = errors.New("win32 window enumeration is only available on windows")

// Enumerator is unavailable outside Windows
type Enumerator struct{}

// NewEnumerator always fails outside Windows
func NewEnumerator() (*Enumerator, error) {
	return nil, ErrUnsupported
}

func (e *Enumerator) IsAvailable() bool {
	return false
}

func (e *Enumerator) GetDisplayServer() string {
	return "win32"
}

func (e *Enumerator) VisitTitles(func(title string) bool) error {
	return ErrUnsupported
}

func (e *Enumerator) Close() error {
	return nil
}
