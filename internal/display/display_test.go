package display

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Canterrain/spotipi-eink/internal/config"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		model       string
		expectError bool
	}{
		{"File Sink", config.ModelFile, false},
		{"Inky Needs Driver", config.ModelInky, true},
		{"Waveshare Needs Driver", config.ModelWaveshare, true},
		{"Unknown Model", "lcd9000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Model = tt.model

			sink, err := New(zap.NewNop(), cfg)
			if tt.expectError {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sink == nil {
				t.Fatal("expected a sink")
			}
		})
	}
}

func TestFileSink_Push(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames", "out.png")
	sink := NewFileSink(zap.NewNop(), path)

	frame := imaging.New(16, 12, color.NRGBA{R: 255, A: 255})

	if err := sink.Clear(context.Background()); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := sink.Push(context.Background(), frame); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected frame file to exist: %v", err)
	}
	saved, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen frame: %v", err)
	}
	if saved.Bounds().Dx() != 16 || saved.Bounds().Dy() != 12 {
		t.Errorf("expected 16x12 frame, got %dx%d", saved.Bounds().Dx(), saved.Bounds().Dy())
	}
}
