package commands

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses a "#RRGGBB" (or shorthand "#RGB") color string
// into an opaque NRGBA color.
func ParseHexColor(s string) (color.NRGBA, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "#") {
		return color.NRGBA{}, fmt.Errorf("color must start with '#', got %q", s)
	}

	hexPart := trimmed[1:]
	if len(hexPart) == 3 {
		hexPart = string([]byte{
			hexPart[0], hexPart[0],
			hexPart[1], hexPart[1],
			hexPart[2], hexPart[2],
		})
	}
	if len(hexPart) != 6 {
		return color.NRGBA{}, fmt.Errorf("color must be in #RRGGBB format, got %q", s)
	}

	value, err := strconv.ParseUint(hexPart, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return color.NRGBA{
		R: uint8((value >> 16) & 0xFF),
		G: uint8((value >> 8) & 0xFF),
		B: uint8(value & 0xFF),
		A: 0xFF,
	}, nil
}
