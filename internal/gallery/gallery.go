// Package gallery selects filler images for the idle display.
package gallery

import (
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Gallery picks an idle image per selection: round-robin over the images
// discovered at construction, or uniformly at random when shuffle is on.
// When nothing was discovered it always falls back to the configured
// default image.
//
// The image set is built once and immutable afterwards; only the cursor
// moves, and only from the single control loop.
type Gallery struct {
	logger   *zap.Logger
	images   []string
	cursor   int
	shuffle  bool
	fallback string
}

// New scans dir (non-recursively) for image files and returns a gallery
// over them. fallback is the path of the default idle image used whenever
// the scan came up empty or a selected file cannot be loaded.
func New(logger *zap.Logger, dir, fallback string, shuffle bool) *Gallery {
	g := &Gallery{
		logger:   logger,
		shuffle:  shuffle,
		fallback: fallback,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Failed to scan idle image folder, using fallback only",
			zap.String("dir", dir), zap.Error(err))
		return g
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			g.images = append(g.images, filepath.Join(dir, entry.Name()))
		}
	}

	logger.Info("Idle gallery loaded",
		zap.Int("count", len(g.images)),
		zap.Bool("shuffle", shuffle))
	return g
}

// Select returns the path of the next idle image. With shuffle enabled the
// pick is random with replacement; otherwise the cursor advances through
// the set in discovery order, wrapping after the last element.
func (g *Gallery) Select() string {
	if len(g.images) == 0 {
		return g.fallback
	}
	if g.shuffle {
		return g.images[rand.Intn(len(g.images))]
	}
	path := g.images[g.cursor]
	g.cursor = (g.cursor + 1) % len(g.images)
	return path
}

// Image selects and loads the next idle image, degrading to the fallback
// image when the selected file is unreadable
func (g *Gallery) Image() image.Image {
	path := g.Select()
	img, err := imaging.Open(path)
	if err == nil {
		return img
	}
	g.logger.Warn("Failed to open idle image", zap.String("path", path), zap.Error(err))
	return g.Fallback()
}

// Fallback loads the default idle image. If even that fails, a plain black
// image is returned so composition always has a valid source.
func (g *Gallery) Fallback() image.Image {
	img, err := imaging.Open(g.fallback)
	if err == nil {
		return img
	}
	g.logger.Error("Failed to open default idle image",
		zap.String("path", g.fallback), zap.Error(err))
	return imaging.New(1, 1, color.NRGBA{A: 255})
}
