package render

import (
	"image"
	"image/color"
	"image/draw"
	"iter"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextBlock draws a flow of wrapped lines onto an image, stacked vertically
// with a fixed line height. When ShadowOffset is positive every line is
// painted twice: shadow color first at (x+offset, y+offset), then the
// primary color on top.
type TextBlock struct {
	Face         font.Face
	LineHeight   int
	Color        color.Color
	ShadowColor  color.Color
	ShadowOffset int
}

// DrawTopDown draws the flow with the first line at anchor y, each following
// line LineHeight lower. Returns the total vertical extent consumed.
func (b TextBlock) DrawTopDown(dst draw.Image, lines iter.Seq[Line], x, y int) int {
	taken := 0
	for line := range lines {
		b.drawLine(dst, line.Text, x, y)
		y += b.LineHeight
		taken += b.LineHeight
	}
	return taken
}

// DrawBottomUp draws the flow so that the last line lands exactly at anchor
// y. The line count is taken first, the anchor shifted up by
// (count-1)*LineHeight, and the lines then drawn top-down from there; a
// bottom-anchored block can therefore never overflow below its baseline no
// matter how many lines the text wraps into. Returns the total vertical
// extent consumed.
func (b TextBlock) DrawBottomUp(dst draw.Image, lines iter.Seq[Line], x, y int) int {
	n := lineCount(lines)
	if n > 1 {
		y -= (n - 1) * b.LineHeight
	}
	return b.DrawTopDown(dst, lines, x, y)
}

func (b TextBlock) drawLine(dst draw.Image, text string, x, y int) {
	if b.ShadowOffset > 0 {
		b.paint(dst, text, x+b.ShadowOffset, y+b.ShadowOffset, b.ShadowColor)
	}
	b.paint(dst, text, x, y, b.Color)
}

// paint draws one line with its top-left corner at (x, y)
func (b TextBlock) paint(dst draw.Image, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: b.Face,
		Dot:  fixed.P(x, y+b.Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
