package widget

import (
	"fmt"
	"strings"
)

// LabelMode controls what prefixes the count in the bar
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelIconOnly
	LabelTextOnly
	LabelIconAndText
)

func (m LabelMode) String() string {
	switch m {
	case LabelIconOnly:
		return "icon"
	case LabelTextOnly:
		return "text"
	case LabelIconAndText:
		return "icon_and_text"
	default:
		return "none"
	}
}

// ParseLabelMode accepts none, icon, text and icon_and_text
func ParseLabelMode(s string) (LabelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return LabelNone, nil
	case "icon", "icon_only":
		return LabelIconOnly, nil
	case "text", "text_only":
		return LabelTextOnly, nil
	case "icon_and_text", "iconandtext", "":
		return LabelIconAndText, nil
	default:
		return LabelIconAndText, fmt.Errorf("invalid label mode: %s (valid: none, icon, text, icon_and_text)", s)
	}
}

// ShowText reports whether the fixed text label is rendered
func (m LabelMode) ShowText() bool {
	return m == LabelTextOnly || m == LabelIconAndText
}

// ShowIcon reports whether the presentation layer should draw an icon
func (m LabelMode) ShowIcon() bool {
	return m == LabelIconOnly || m == LabelIconAndText
}

// Format renders count for the bar
func Format(mode LabelMode, label string, count uint32) string {
	if mode.ShowText() {
		if count > 0 {
			return fmt.Sprintf("%s %d", label, count)
		}
		return label
	}

	if count > 0 {
		return fmt.Sprintf("%d", count)
	}
	return ""
}
