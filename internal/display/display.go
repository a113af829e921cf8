// Package display adapts composited frames to the supported display
// hardware families. The raw panel I/O (SPI transfers, busy-wait pins)
// lives behind narrow device interfaces so the sinks stay testable and the
// drivers swappable.
package display

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/Canterrain/spotipi-eink/internal/config"
	"github.com/Canterrain/spotipi-eink/internal/domain"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// New returns the sink for the configured display model. Hardware sinks
// need their panel driver injected (see NewWaveshareSink/NewInkySink);
// without one only the file sink can be built here.
func New(logger *zap.Logger, cfg *config.Config) (domain.Sink, error) {
	switch cfg.Model {
	case config.ModelFile:
		return NewFileSink(logger, cfg.OutputPath), nil
	case config.ModelInky, config.ModelWaveshare:
		return nil, fmt.Errorf("display model %q requires a linked panel driver", cfg.Model)
	default:
		return nil, fmt.Errorf("unknown display model: %q", cfg.Model)
	}
}

// FileSink writes each frame to a PNG file instead of a physical panel.
// Used by the render subcommand and for working on layout without hardware.
type FileSink struct {
	logger *zap.Logger
	path   string
}

// NewFileSink creates a sink writing frames to path
func NewFileSink(logger *zap.Logger, path string) *FileSink {
	return &FileSink{logger: logger, path: path}
}

// Clear is a no-op for files
func (s *FileSink) Clear(ctx context.Context) error {
	s.logger.Debug("File sink clear (no-op)")
	return nil
}

// Push writes the frame as PNG, creating the target directory if needed
func (s *FileSink) Push(ctx context.Context, frame image.Image) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(frame, s.path); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	s.logger.Info("Frame written", zap.String("path", s.path))
	return nil
}
