package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

// Gap between the small cover area and the title block in top-down mode
const titleGapPx = 10

// Layout is the immutable layout snapshot consumed once per frame build
type Layout struct {
	Width  int
	Height int

	OffsetLeft   int
	OffsetRight  int
	OffsetTop    int
	OffsetBottom int

	SmallCover   bool
	SmallCoverPx int

	ShadowOffset int

	TextDirection  string // "top-down" or "bottom-up"
	BackgroundMode string // "fit" or "repeat"
	BackgroundBlur int

	TitleFace  font.Face
	TitleSize  int
	ArtistFace font.Face
	ArtistSize int
}

// Compositor builds display frames: a background fitted to canvas size, an
// optional blurred backdrop with a centered artwork thumbnail, and the
// wrapped title/artist text on top.
type Compositor struct {
	logger *zap.Logger
	layout Layout
}

// NewCompositor creates a frame compositor for the given layout
func NewCompositor(logger *zap.Logger, layout Layout) *Compositor {
	return &Compositor{
		logger: logger,
		layout: layout,
	}
}

// Compose builds the final frame from a decoded source image (album art or
// idle image) and the track text. Empty title/artist are permitted and draw
// nothing. showSmallCover asks for the centered thumbnail overlay; it is
// honored only when the layout also enables it.
//
// The returned frame always has exactly the canvas dimensions. Fetching is
// not this component's concern: callers substitute the fallback idle image
// and call Compose again when the cover could not be retrieved.
func (c *Compositor) Compose(src image.Image, title, artist string, showSmallCover bool) (*image.NRGBA, error) {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("invalid source image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	canvas := c.background(src)

	// Blur is coupled to the small-cover feature: it exists to de-emphasize
	// the full-bleed background behind the floating thumbnail
	if c.layout.SmallCover && c.layout.BackgroundBlur > 0 {
		canvas = imaging.Blur(canvas, float64(c.layout.BackgroundBlur))
	}

	if showSmallCover && c.layout.SmallCover {
		px := c.layout.SmallCoverPx
		thumb := imaging.Resize(src, px, px, imaging.Lanczos)
		canvas = imaging.Paste(canvas, thumb, image.Pt((c.layout.Width-px)/2, c.layout.OffsetTop))
	}

	c.drawText(canvas, title, artist)

	c.logger.Debug("Frame composed",
		zap.Int("w", canvas.Bounds().Dx()),
		zap.Int("h", canvas.Bounds().Dy()),
		zap.Bool("smallCover", showSmallCover && c.layout.SmallCover))

	return canvas, nil
}

// background produces the canvas-sized backdrop from the source image
func (c *Compositor) background(src image.Image) *image.NRGBA {
	w, h := c.layout.Width, c.layout.Height

	switch c.layout.BackgroundMode {
	case "fit":
		// Scale and crop to exactly canvas size, anchored top-left.
		// Cropping is acceptable; letterboxing is not.
		return imaging.Fill(src, w, h, imaging.TopLeft, imaging.Lanczos)

	case "repeat":
		// Tile the unscaled source from (0,0); partial tiles are clipped
		// at the canvas edge by the paste
		bw, bh := src.Bounds().Dx(), src.Bounds().Dy()
		canvas := imaging.New(w, h, color.NRGBA{A: 255})
		for x := 0; x < w; x += bw {
			for y := 0; y < h; y += bh {
				canvas = imaging.Paste(canvas, src, image.Pt(x, y))
			}
		}
		return canvas

	default:
		// Unrecognized mode: plain top-left crop to canvas size
		c.logger.Warn("Unrecognized background mode, cropping",
			zap.String("mode", c.layout.BackgroundMode))
		canvas := imaging.New(w, h, color.NRGBA{A: 255})
		return imaging.Paste(canvas, src, image.Pt(0, 0))
	}
}

// drawText renders the title and artist blocks. In top-down mode the title
// sits just below the small-cover area and the artist below the title block.
// Bottom-up mode reverses the stacking: the artist hugs the bottom offset
// and the title stacks above it.
func (c *Compositor) drawText(canvas *image.NRGBA, title, artist string) {
	budget := c.layout.Width - c.layout.OffsetLeft - c.layout.OffsetRight - c.layout.ShadowOffset

	titleBlock := TextBlock{
		Face:         c.layout.TitleFace,
		LineHeight:   c.layout.TitleSize,
		Color:        color.White,
		ShadowColor:  color.Black,
		ShadowOffset: c.layout.ShadowOffset,
	}
	artistBlock := TextBlock{
		Face:         c.layout.ArtistFace,
		LineHeight:   c.layout.ArtistSize,
		Color:        color.White,
		ShadowColor:  color.Black,
		ShadowOffset: c.layout.ShadowOffset,
	}

	titleLines := Flow(title, budget, Measurer(c.layout.TitleFace))
	artistLines := Flow(artist, budget, Measurer(c.layout.ArtistFace))

	x := c.layout.OffsetLeft

	if c.layout.TextDirection == "bottom-up" {
		artistY := c.layout.Height - (c.layout.OffsetBottom + c.layout.ArtistSize)
		artistHeight := artistBlock.DrawBottomUp(canvas, artistLines, x, artistY)

		titleY := c.layout.Height - (c.layout.OffsetBottom + c.layout.TitleSize) - artistHeight
		titleBlock.DrawBottomUp(canvas, titleLines, x, titleY)
		return
	}

	titleY := c.layout.SmallCoverPx + c.layout.OffsetTop + titleGapPx
	titleHeight := titleBlock.DrawTopDown(canvas, titleLines, x, titleY)

	artistY := titleY + titleHeight
	artistBlock.DrawTopDown(canvas, artistLines, x, artistY)
}
