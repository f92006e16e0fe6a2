//go:build windows

package win32

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows          = user32.NewProc("EnumWindows")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")

	// Go caps the number of callbacks a process may create, so a single
	// trampoline serves every enumeration.
	enumWindowsCallback = windows.NewCallback(enumWindowsProc)

	visits    sync.Map // uintptr token -> *visit
	nextToken atomic.Uintptr
)

// visit carries one VisitTitles call through EnumWindows. Its token is
// passed as the LPARAM so concurrent enumerations never share state.
type visit struct {
	fn      func(title string) bool
	stopped bool
}

// Enumerator implements window.Enumerator with user32 EnumWindows
type Enumerator struct{}

// NewEnumerator creates a new win32 enumerator
func NewEnumerator() (*Enumerator, error) {
	if err := procEnumWindows.Find(); err != nil {
		return nil, errors.Wrap(err, "user32 EnumWindows unavailable")
	}
	return &Enumerator{}, nil
}

// IsAvailable checks if user32 exports the enumeration primitives
func (e *Enumerator) IsAvailable() bool {
	return procEnumWindows.Find() == nil &&
		procGetWindowTextLengthW.Find() == nil &&
		procGetWindowTextW.Find() == nil
}

// GetDisplayServer returns "win32"
func (e *Enumerator) GetDisplayServer() string {
	return "win32"
}

// VisitTitles walks all top-level windows. EnumWindows runs the callback
// synchronously on the calling thread.
func (e *Enumerator) VisitTitles(fn func(title string) bool) error {
	token := nextToken.Add(1)
	v := &visit{fn: fn}
	visits.Store(token, v)
	defer visits.Delete(token)

	r, _, callErr := procEnumWindows.Call(enumWindowsCallback, token)
	if r == 0 && !v.stopped {
		return errors.Wrap(callErr, "EnumWindows failed")
	}
	return nil
}

// Close is a no-op; user32 stays loaded for the life of the process
func (e *Enumerator) Close() error {
	return nil
}

func enumWindowsProc(hwnd windows.HWND, lparam uintptr) uintptr {
	value, ok := visits.Load(lparam)
	if !ok {
		return 0
	}
	v := value.(*visit)

	title, ok := windowTitle(hwnd)
	if !ok {
		return 1
	}

	if !v.fn(title) {
		v.stopped = true
		return 0
	}
	return 1
}

// windowTitle reads the title of hwnd through user32
func windowTitle(hwnd windows.HWND) (string, bool) {
	return readTitle(
		func() int32 {
			length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
			return int32(length)
		},
		func(buf []uint16) int32 {
			copied, _, _ := procGetWindowTextW.Call(
				uintptr(hwnd),
				uintptr(unsafe.Pointer(&buf[0])),
				uintptr(len(buf)),
			)
			return int32(copied)
		},
	)
}
