package display

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// wavesharePalette is the 7-color palette of the Waveshare 4.01" ACeP
// panel, in the index order the controller expects
var wavesharePalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff}, // black
	color.RGBA{0xff, 0xff, 0xff, 0xff}, // white
	color.RGBA{0x00, 0xff, 0x00, 0xff}, // green
	color.RGBA{0x00, 0x00, 0xff, 0xff}, // blue
	color.RGBA{0xff, 0x00, 0x00, 0xff}, // red
	color.RGBA{0xff, 0xff, 0x00, 0xff}, // yellow
	color.RGBA{0xff, 0x80, 0x00, 0xff}, // orange
}

// Saturation boost applied before quantization; the panel's muted inks need
// exaggerated input colors to read as intended
const waveshareSaturationBoost = 100

// WavesharePanel is the raw e-paper driver contract for the Waveshare
// family. The concrete SPI implementation is an external collaborator.
type WavesharePanel interface {
	Init() error
	Clear() error
	// Display pushes a packed buffer of two 4-bit palette indices per byte,
	// row-major from the top-left
	Display(buf []byte) error
	Sleep() error
}

// WaveshareSink drives a Waveshare 4.01" 7-color panel
type WaveshareSink struct {
	logger *zap.Logger
	panel  WavesharePanel
}

// NewWaveshareSink creates a sink over the given panel driver
func NewWaveshareSink(logger *zap.Logger, panel WavesharePanel) *WaveshareSink {
	return &WaveshareSink{logger: logger, panel: panel}
}

// Clear runs the panel's full clear cycle
func (s *WaveshareSink) Clear(ctx context.Context) error {
	if err := s.panel.Init(); err != nil {
		return fmt.Errorf("panel init failed: %w", err)
	}
	if err := s.panel.Clear(); err != nil {
		return fmt.Errorf("panel clear failed: %w", err)
	}
	s.logger.Debug("Waveshare panel cleared")
	return nil
}

// Push quantizes the frame to the panel's palette and displays it
func (s *WaveshareSink) Push(ctx context.Context, frame image.Image) error {
	if err := s.panel.Init(); err != nil {
		return fmt.Errorf("panel init failed: %w", err)
	}
	if err := s.panel.Display(packFrame(frame)); err != nil {
		return fmt.Errorf("panel display failed: %w", err)
	}
	if err := s.panel.Sleep(); err != nil {
		return fmt.Errorf("panel sleep failed: %w", err)
	}
	return nil
}

// packFrame converts a frame to the panel's packed 4-bit palette buffer
func packFrame(frame image.Image) []byte {
	// Boost saturation, then map each pixel to its nearest palette entry
	boosted := imaging.AdjustSaturation(frame, waveshareSaturationBoost)

	bounds := boosted.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	buf := make([]byte, 0, (w*h+1)/2)
	var pending byte
	havePending := false

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := byte(wavesharePalette.Index(boosted.At(bounds.Min.X+x, bounds.Min.Y+y)))
			if havePending {
				buf = append(buf, pending<<4|idx)
				havePending = false
			} else {
				pending = idx
				havePending = true
			}
		}
	}
	if havePending {
		buf = append(buf, pending<<4)
	}
	return buf
}
