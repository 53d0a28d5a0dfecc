package terminal

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitToCells(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 1000, 1500))
	fitted := FitToCells(big, 20, 20)
	assert.LessOrEqual(t, fitted.Bounds().Dx(), 20*cellWidth)
	assert.LessOrEqual(t, fitted.Bounds().Dy(), 20*cellHeight)

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, FitToCells(small, 20, 20))
}

func TestRenderImageToString_NoneIsEmpty(t *testing.T) {
	out, err := RenderImageToString(image.NewRGBA(image.Rect(0, 0, 2, 2)), TermModeNone)
	assert.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, ClearImages(TermModeNone))
}

func TestTermImageMode_String(t *testing.T) {
	assert.Equal(t, "Kitty", TermModeKitty.String())
	assert.Equal(t, "None", TermImageMode(42).String())
}

func TestClearImagesCmd(t *testing.T) {
	var buf strings.Builder
	ClearImagesCmd(&buf, TermModeKitty)()
	assert.Equal(t, "\x1b_Ga=d,d=A\x1b\\", buf.String())

	buf.Reset()
	ClearImagesCmd(&buf, TermModeNone)()
	assert.Empty(t, buf.String())
}
