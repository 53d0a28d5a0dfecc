package terminal

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/draw"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/disintegration/imaging"
)

// TermImageMode represents the terminal's image display capability
type TermImageMode int

const (
	// TermModeNone indicates no image support
	TermModeNone TermImageMode = iota
	// TermModeKitty indicates Kitty graphics protocol support
	TermModeKitty
	// TermModeIterm indicates iTerm2 graphics protocol support
	TermModeIterm
	// TermModeSixel indicates Sixel graphics protocol support
	TermModeSixel
)

// CoverImageID is a stable ID for the cover image (for Kitty protocol)
const CoverImageID uint32 = 1989

// Approximate pixel size of one terminal cell
const (
	cellWidth  = 10
	cellHeight = 20
)

// String returns a human-readable name for the terminal mode
func (m TermImageMode) String() string {
	switch m {
	case TermModeKitty:
		return "Kitty"
	case TermModeIterm:
		return "iTerm2"
	case TermModeSixel:
		return "Sixel"
	default:
		return "None"
	}
}

// DetectTerminalMode checks which image protocol the terminal supports
func DetectTerminalMode() TermImageMode {
	if rasterm.IsKittyCapable() {
		return TermModeKitty
	}
	if rasterm.IsItermCapable() {
		return TermModeIterm
	}
	if capable, _ := rasterm.IsSixelCapable(); capable {
		return TermModeSixel
	}
	return TermModeNone
}

// FitToCells scales img down so it covers at most cols x rows cells
func FitToCells(img image.Image, cols, rows int) image.Image {
	if img == nil || cols <= 0 || rows <= 0 {
		return img
	}
	w, h := cols*cellWidth, rows*cellHeight
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	return imaging.Fit(img, w, h, imaging.Lanczos)
}

// ImageToPaletted converts an image to a paletted image required for Sixel
func ImageToPaletted(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)
	return paletted
}

// RenderImageToString renders an image to a string based on the terminal mode
func RenderImageToString(img image.Image, mode TermImageMode) (string, error) {
	var buf bytes.Buffer
	var err error

	switch mode {
	case TermModeKitty:
		err = rasterm.KittyWriteImage(&buf, img, rasterm.KittyImgOpts{ImageId: CoverImageID})
	case TermModeIterm:
		err = rasterm.ItermWriteImage(&buf, img)
	case TermModeSixel:
		// Write to buffer instead of stdout for proper bubbletea integration
		err = rasterm.SixelWriteImage(&buf, ImageToPaletted(img))
	default:
		return "", nil
	}

	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ClearImages returns the escape sequence that removes drawn images
func ClearImages(mode TermImageMode) string {
	switch mode {
	case TermModeKitty:
		// a=d (action=delete), d=A (delete all images)
		return "\x1b_Ga=d,d=A\x1b\\"
	case TermModeIterm, TermModeSixel:
		// Images are part of the text buffer; a screen clear removes them
		return "\x1b[2J\x1b[H"
	default:
		return ""
	}
}

// ClearImagesCmd returns a func that writes the clear sequence for mode
// to w. Call it before leaving a screen that drew an image.
func ClearImagesCmd(w io.Writer, mode TermImageMode) func() {
	return func() {
		if seq := ClearImages(mode); seq != "" {
			_, _ = io.WriteString(w, seq)
		}
	}
}
