package store

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a CSS-style hex color such as "#fff" or "#1a1a1a"
type Color string

// The two text color sentinels. A text color equal to either is treated as
// never customized.
const (
	Black Color = "#000"
	White Color = "#fff"
)

// minLegibleDistance is the Lab distance below which two colors read as
// the same on screen
const minLegibleDistance = 0.25

// DefaultDarkThemes are the backgrounds that get white text
var DefaultDarkThemes = []Color{"#1a1a1a", "#332d20", "#000000", "#1e1e1e"}

// Normalize returns the lowercase six digit form of c, or the trimmed
// lowercase input when it does not parse as hex.
func (c Color) Normalize() Color {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	parsed, err := colorful.Hex(s)
	if err != nil {
		return Color(s)
	}
	return Color(parsed.Hex())
}

// Equal compares two colors after normalization
func (c Color) Equal(other Color) bool {
	return c.Normalize() == other.Normalize()
}

// IsDefaultText reports whether c is one of the black/white sentinels
func (c Color) IsDefaultText() bool {
	return c.Equal(Black) || c.Equal(White)
}

// IsDark reports whether c has a perceptual lightness below one half.
// Unparsable colors are not dark.
func (c Color) IsDark() bool {
	parsed, err := colorful.Hex(string(c.Normalize()))
	if err != nil {
		return false
	}
	l, _, _ := parsed.Lab()
	return l < 0.5
}

// Legible reports whether text drawn in fg on bg stays readable
func Legible(bg, fg Color) bool {
	b, err := colorful.Hex(string(bg.Normalize()))
	if err != nil {
		return true
	}
	f, err := colorful.Hex(string(fg.Normalize()))
	if err != nil {
		return true
	}
	return b.DistanceLab(f) >= minLegibleDistance
}

// ThemeSet is a set of colors compared by normalized value
type ThemeSet struct {
	colors map[Color]struct{}
}

// NewThemeSet builds a set from colors
func NewThemeSet(colors ...Color) ThemeSet {
	s := ThemeSet{colors: make(map[Color]struct{}, len(colors))}
	for _, c := range colors {
		s.colors[c.Normalize()] = struct{}{}
	}
	return s
}

// Contains reports whether c is in the set
func (s ThemeSet) Contains(c Color) bool {
	_, ok := s.colors[c.Normalize()]
	return ok
}

// Len returns the number of distinct colors
func (s ThemeSet) Len() int {
	return len(s.colors)
}
