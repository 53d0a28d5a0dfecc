// Package content turns chapter markup into wrapped terminal lines.
package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/lipgloss"
)

// baseFontSize is the font size that renders at full width
const baseFontSize = 16

// minWidth is the narrowest column text is wrapped to
const minWidth = 20

var (
	// tagPattern matches anything that looks like a markup tag
	tagPattern = regexp.MustCompile(`<[^>]+>`)
	// blankRuns collapses three or more newlines to a paragraph break
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// ToText converts chapter markup to readable plain text. Markup that
// cannot be converted has its tags stripped instead.
func ToText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	text, err := htmltomarkdown.ConvertString(markup)
	if err != nil {
		text = tagPattern.ReplaceAllString(markup, " ")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Scale returns the text scale for a font size. Larger fonts wrap to
// narrower columns.
func Scale(fontSize int) float64 {
	if fontSize <= 0 {
		return 1
	}
	return float64(fontSize) / baseFontSize
}

// ColumnWidth returns the wrap width for a terminal of width cells at the
// given scale.
func ColumnWidth(width int, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	col := int(float64(width) / scale)
	if col < minWidth {
		col = minWidth
	}
	if col > width && width >= minWidth {
		col = width
	}
	return col
}

// Wrap breaks text into lines no wider than width cells. Paragraph breaks
// are kept as empty lines.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		lineWidth := 0
		for _, word := range words {
			w := lipgloss.Width(word)
			switch {
			case lineWidth == 0:
				line.WriteString(word)
				lineWidth = w
			case lineWidth+1+w <= width:
				line.WriteByte(' ')
				line.WriteString(word)
				lineWidth += 1 + w
			default:
				lines = append(lines, line.String())
				line.Reset()
				line.WriteString(word)
				lineWidth = w
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}
