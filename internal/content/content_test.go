package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToText_ConvertsMarkup(t *testing.T) {
	text := ToText(`<html><body><h1>Chapter One</h1><p>It was a <em>dark</em> night.</p><p>Then dawn.</p></body></html>`)

	assert.Contains(t, text, "Chapter One")
	assert.Contains(t, text, "dark")
	assert.Contains(t, text, "Then dawn.")
	assert.NotContains(t, text, "<p>")
	assert.NotContains(t, text, "\n\n\n")
}

func TestToText_Empty(t *testing.T) {
	assert.Equal(t, "", ToText("  \n "))
}

func TestScale(t *testing.T) {
	assert.Equal(t, 1.0, Scale(16))
	assert.Equal(t, 1.5, Scale(24))
	assert.Equal(t, 0.75, Scale(12))
	assert.Equal(t, 1.0, Scale(0))
}

func TestColumnWidth(t *testing.T) {
	assert.Equal(t, 80, ColumnWidth(80, 1))
	assert.Equal(t, 40, ColumnWidth(80, 2))
	assert.Equal(t, 80, ColumnWidth(80, 0.75), "never wider than the terminal")
	assert.Equal(t, minWidth, ColumnWidth(30, 1.5))
}

func TestWrap(t *testing.T) {
	lines := Wrap("the quick brown fox jumps\n\nover", 10)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps", "", "over"}, lines)

	for _, l := range Wrap(strings.Repeat("word ", 50), 12) {
		assert.LessOrEqual(t, len(l), 12)
	}
}

func TestWrap_LongWordKeepsOwnLine(t *testing.T) {
	assert.Equal(t, []string{"a", "supercalifragilistic", "b"}, Wrap("a supercalifragilistic b", 5))
}
