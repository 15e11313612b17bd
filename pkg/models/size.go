package models

import "strings"

// Size is the image resolution variant requested for listing images.
type Size int

const (
	SizeNone Size = iota
	SizeSmall
	SizeMedium
	SizeBig
)

// ParseSize maps "small", "medium" and "big" to their Size. Anything else
// is SizeNone, which appends no suffix to image URLs.
func ParseSize(s string) Size {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return SizeSmall
	case "medium":
		return SizeMedium
	case "big":
		return SizeBig
	default:
		return SizeNone
	}
}

// Suffix is the size token appended to a truncated image URL.
func (s Size) Suffix() string {
	switch s {
	case SizeSmall:
		return "64fx64f"
	case SizeMedium:
		return "128fx128f"
	case SizeBig:
		return "256fx256f"
	default:
		return ""
	}
}

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeBig:
		return "big"
	default:
		return "none"
	}
}
