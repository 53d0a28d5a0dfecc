package store

import (
	"math"
	"strings"
)

// averageWordCells approximates how many terminal cells a word and its
// trailing space occupy
const averageWordCells = 6

// Viewport is the vertical space a chapter is laid out in
type Viewport struct {
	Height float64
	Header float64
	Footer float64
}

// Available returns the height left for text
func (v Viewport) Available() float64 {
	return v.Height - v.Header - v.Footer
}

// Metrics describes the type used to estimate pages
type Metrics struct {
	FontSize     float64
	LineHeight   float64 // multiplier of FontSize
	WordsPerLine int
}

// DefaultMetrics matches the browser reader: 16px text at 1.6 line height,
// 16 words per line.
var DefaultMetrics = Metrics{FontSize: 16, LineHeight: 1.6, WordsPerLine: 16}

// TerminalMetrics measures in terminal rows: one row per line and as many
// words per line as fit in width cells.
func TerminalMetrics(width int) Metrics {
	return Metrics{
		FontSize:     1,
		LineHeight:   1,
		WordsPerLine: max(1, width/averageWordCells),
	}
}

// PageGeometry is everything ComputePages needs besides the content
type PageGeometry struct {
	Viewport Viewport
	Metrics  Metrics
}

// BrowserGeometry returns the geometry of a browser viewport of the given
// height with the reader's fixed header and footer allowances.
func BrowserGeometry(height float64) PageGeometry {
	return PageGeometry{
		Viewport: Viewport{Height: height, Header: 60, Footer: 100},
		Metrics:  DefaultMetrics,
	}
}

// ComputePages estimates how many pages content spans. The result is
// advisory and never below 1.
func ComputePages(content string, g PageGeometry) int {
	m := g.Metrics
	if m.FontSize <= 0 || m.LineHeight <= 0 {
		m.FontSize, m.LineHeight = DefaultMetrics.FontSize, DefaultMetrics.LineHeight
	}
	if m.WordsPerLine <= 0 {
		m.WordsPerLine = DefaultMetrics.WordsPerLine
	}

	available := g.Viewport.Available()
	if available <= 0 {
		return 1
	}
	linesPerPage := int(math.Floor(available / (m.FontSize * m.LineHeight)))
	wordsPerPage := linesPerPage * m.WordsPerLine
	if wordsPerPage <= 0 {
		return 1
	}

	words := WordCount(content)
	pages := (words + wordsPerPage - 1) / wordsPerPage
	return max(1, pages)
}

// WordCount counts whitespace separated runs in s
func WordCount(s string) int {
	return len(strings.Fields(s))
}
