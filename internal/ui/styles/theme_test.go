package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeFor(t *testing.T) {
	assert.Equal(t, "dark", ThemeFor("#1a1a1a").Name)
	assert.Equal(t, "dark", ThemeFor("#000").Name)
	assert.Equal(t, "light", ThemeFor("#ffffff").Name)
	assert.Equal(t, "light", ThemeFor("#f0f9eb").Name)
	assert.Equal(t, "sepia", ThemeFor("#F4ECD8").Name)
}

func TestApplyTheme(t *testing.T) {
	defer ApplyTheme(DarkTheme)

	ApplyTheme(SepiaTheme)
	assert.Equal(t, "sepia", CurrentTheme().Name)
	assert.Equal(t, SepiaTheme.Primary, Primary)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "abcd…", TruncateText("abcdefgh", 5))
	assert.Equal(t, "", TruncateText("abc", 0))
}
