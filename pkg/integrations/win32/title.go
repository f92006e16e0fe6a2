package win32

import "unicode/utf16"

// readTitle turns the GetWindowTextLengthW / GetWindowTextW pair into a
// title. length reports the title length in UTF-16 units; fill copies into
// buf and returns the number of units written. A window with no title, or
// whose title cannot be copied, reports false.
func readTitle(length func() int32, fill func(buf []uint16) int32) (string, bool) {
	n := length()
	if n <= 0 {
		return "", false
	}

	buf := make([]uint16, int(n)+1)
	copied := int(fill(buf))
	if copied <= 0 {
		return "", false
	}
	if copied > len(buf) {
		copied = len(buf)
	}

	units := buf[:copied]
	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	return string(utf16.Decode(units)), true
}
