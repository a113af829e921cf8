package display

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"
)

// Saturation passed to the Inky driver when showing a frame
const inkySaturation = 0.5

// InkyDevice is the driver contract for the Pimoroni Inky family.
// The concrete implementation is an external collaborator.
type InkyDevice interface {
	Width() int
	Height() int
	// SetImage hands the driver a frame to quantize at the given saturation
	SetImage(frame image.Image, saturation float64) error
	// SetPixel writes one pixel of the panel's clean color
	SetPixel(x, y int)
	// Show refreshes the panel with whatever was set
	Show() error
}

// InkySink drives a Pimoroni Inky panel
type InkySink struct {
	logger *zap.Logger
	device InkyDevice
}

// NewInkySink creates a sink over the given Inky driver
func NewInkySink(logger *zap.Logger, device InkyDevice) *InkySink {
	return &InkySink{logger: logger, device: device}
}

// Clear floods the panel with its clean color and refreshes twice; a single
// pass leaves ghosting on these panels
func (s *InkySink) Clear(ctx context.Context) error {
	for pass := 0; pass < 2; pass++ {
		for y := 0; y < s.device.Height(); y++ {
			for x := 0; x < s.device.Width(); x++ {
				s.device.SetPixel(x, y)
			}
		}
		if err := s.device.Show(); err != nil {
			return fmt.Errorf("panel refresh failed: %w", err)
		}
	}
	s.logger.Debug("Inky panel cleared")
	return nil
}

// Push shows the frame on the panel
func (s *InkySink) Push(ctx context.Context, frame image.Image) error {
	if err := s.device.SetImage(frame, inkySaturation); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}
	if err := s.device.Show(); err != nil {
		return fmt.Errorf("panel refresh failed: %w", err)
	}
	return nil
}
