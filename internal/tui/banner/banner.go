// Package banner renders short strings as large block art using half-block
// characters, for the end-of-round time display.
package banner

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// threshold is the brightness above which a pixel counts as set.
const threshold = uint8(40)

var face = basicfont.Face7x13

// Render draws s with the built-in 7x13 bitmap font. Every two pixel rows
// become one line of ▀▄█ characters. Runes outside printable ASCII render
// blank.
func Render(s string) string {
	if s == "" {
		return ""
	}

	width := font.MeasureString(face, s).Ceil()
	height := face.Height
	if width <= 0 {
		return ""
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	return toHalfBlocks(trimRows(img))
}

// trimRows crops blank pixel rows above and below the glyphs.
func trimRows(img *image.Gray) *image.Gray {
	b := img.Bounds()
	top, bottom := b.Min.Y, b.Max.Y
	for top < bottom && blankRow(img, top) {
		top++
	}
	for bottom > top && blankRow(img, bottom-1) {
		bottom--
	}
	if top == bottom {
		return img
	}
	return img.SubImage(image.Rect(b.Min.X, top, b.Max.X, bottom)).(*image.Gray)
}

func blankRow(img *image.Gray, y int) bool {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		if img.GrayAt(x, y).Y > threshold {
			return false
		}
	}
	return true
}

// toHalfBlocks converts a grayscale image to half-block art.
func toHalfBlocks(img *image.Gray) string {
	b := img.Bounds()
	rows := (b.Dy() + 1) / 2

	var result strings.Builder
	for row := 0; row < rows; row++ {
		topY := b.Min.Y + row*2
		bottomY := topY + 1

		for x := b.Min.X; x < b.Max.X; x++ {
			topOn := lit(img, x, topY)
			bottomOn := lit(img, x, bottomY)

			switch {
			case topOn && bottomOn:
				result.WriteRune('█')
			case topOn:
				result.WriteRune('▀')
			case bottomOn:
				result.WriteRune('▄')
			default:
				result.WriteRune(' ')
			}
		}
		if row < rows-1 {
			result.WriteRune('\n')
		}
	}

	return result.String()
}

func lit(img *image.Gray, x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return false
	}
	return img.GrayAt(x, y).Y > threshold
}
