package x11

import (
	"encoding/binary"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// maxClientList bounds the _NET_CLIENT_LIST read, in 32-bit units
const maxClientList = 4096

// maxTitleLength bounds title property reads, in 32-bit units
const maxTitleLength = 1024

var atomNames = []string{
	"_NET_CLIENT_LIST",
	"_NET_WM_NAME",
	"UTF8_STRING",
	"WM_NAME",
}

// Enumerator implements window.Enumerator over an X11 connection
type Enumerator struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewEnumerator connects to the X server named by $DISPLAY
func NewEnumerator() (*Enumerator, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	setup := xproto.Setup(conn)
	e := &Enumerator{
		conn:  conn,
		root:  setup.DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to intern atom %s", name)
		}
		e.atoms[name] = reply.Atom
	}

	return e, nil
}

// IsAvailable reports whether the connection is open
func (e *Enumerator) IsAvailable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn != nil
}

// GetDisplayServer returns "x11"
func (e *Enumerator) GetDisplayServer() string {
	return "x11"
}

// VisitTitles walks the window manager's client list. Without an EWMH
// window manager it falls back to the root window's children.
func (e *Enumerator) VisitTitles(visit func(title string) bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn == nil {
		return errors.New("x11 connection is closed")
	}

	windows, err := e.topLevelWindows()
	if err != nil {
		return err
	}

	for _, w := range windows {
		title := e.windowName(w)
		if title == "" {
			continue
		}
		if !visit(title) {
			return nil
		}
	}
	return nil
}

// Close closes the X connection
func (e *Enumerator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn != nil {
		e.conn.Close()
		e.conn = nil
	}
	return nil
}

func (e *Enumerator) topLevelWindows() ([]xproto.Window, error) {
	data, err := e.getProperty(e.root, e.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow, maxClientList)
	if err == nil && len(data) >= 4 {
		return decodeWindowList(data), nil
	}

	reply, err := xproto.QueryTree(e.conn, e.root).Reply()
	if err != nil {
		return nil, errors.Wrap(err, "failed to query root window tree")
	}
	return reply.Children, nil
}

func (e *Enumerator) getProperty(window xproto.Window, atom xproto.Atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(e.conn, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (e *Enumerator) windowName(window xproto.Window) string {
	data, err := e.getProperty(window, e.atoms["_NET_WM_NAME"], e.atoms["UTF8_STRING"], maxTitleLength)
	if err == nil && len(data) > 0 {
		return trimTitle(data)
	}

	data, err = e.getProperty(window, e.atoms["WM_NAME"], xproto.AtomString, maxTitleLength)
	if err == nil && len(data) > 0 {
		return trimTitle(data)
	}

	return ""
}

// decodeWindowList turns a 32-bit window property into window ids
func decodeWindowList(data []byte) []xproto.Window {
	windows := make([]xproto.Window, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		windows = append(windows, xproto.Window(binary.LittleEndian.Uint32(data[i:])))
	}
	return windows
}

func trimTitle(data []byte) string {
	return strings.TrimRight(string(data), "\x00")
}
