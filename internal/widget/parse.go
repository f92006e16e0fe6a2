package widget

import (
	"strconv"
	"strings"
)

// ParseCount reads a notification count from a title of the form
// "(count) App | activity". Anything else yields 0.
func ParseCount(title string) uint32 {
	if !strings.HasPrefix(title, "(") {
		return 0
	}

	end := strings.IndexByte(title, ')')
	if end < 0 {
		return 0
	}

	count, err := strconv.ParseUint(title[1:end], 10, 32)
	if err != nil {
		return 0
	}
	return uint32(count)
}
