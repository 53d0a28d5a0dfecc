package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePages_BrowserExample(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("lorem ", 3200))
	assert.Equal(t, 8, ComputePages(content, BrowserGeometry(900)))
}

func TestComputePages(t *testing.T) {
	tests := []struct {
		name    string
		content string
		geo     PageGeometry
		want    int
	}{
		{"empty content", "", BrowserGeometry(900), 1},
		{"exactly one page", strings.Repeat("w ", 448), BrowserGeometry(900), 1},
		{"one word over", strings.Repeat("w ", 449), BrowserGeometry(900), 2},
		{"zero viewport", strings.Repeat("w ", 5000), PageGeometry{}, 1},
		{"viewport smaller than chrome", strings.Repeat("w ", 5000), BrowserGeometry(100), 1},
		{"less than one line", strings.Repeat("w ", 5000), BrowserGeometry(180), 1},
		{
			"terminal rows",
			strings.Repeat("w ", 200),
			PageGeometry{Viewport: Viewport{Height: 24, Header: 2, Footer: 2}, Metrics: TerminalMetrics(60)},
			1,
		},
		{
			"terminal rows overflow",
			strings.Repeat("w ", 201),
			PageGeometry{Viewport: Viewport{Height: 24, Header: 2, Footer: 2}, Metrics: TerminalMetrics(60)},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePages(tt.content, tt.geo))
		})
	}
}

func TestWordCount_SplitsOnWhitespaceRuns(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount(" \n\t "))
	assert.Equal(t, 3, WordCount("  <p>one</p>\n\n two\tthree  "))
}

func TestTerminalMetrics_AtLeastOneWordPerLine(t *testing.T) {
	assert.Equal(t, 1, TerminalMetrics(0).WordsPerLine)
	assert.Equal(t, 10, TerminalMetrics(60).WordsPerLine)
}
