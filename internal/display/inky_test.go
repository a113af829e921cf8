package display

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

type fakeInky struct {
	w, h      int
	setPixels int
	shows     int
	lastFrame image.Image
	lastSat   float64
}

func (d *fakeInky) Width() int  { return d.w }
func (d *fakeInky) Height() int { return d.h }
func (d *fakeInky) SetImage(frame image.Image, saturation float64) error {
	d.lastFrame = frame
	d.lastSat = saturation
	return nil
}
func (d *fakeInky) SetPixel(x, y int) { d.setPixels++ }
func (d *fakeInky) Show() error       { d.shows++; return nil }

func TestInkySink_Clear(t *testing.T) {
	dev := &fakeInky{w: 4, h: 3}
	sink := NewInkySink(zap.NewNop(), dev)

	if err := sink.Clear(context.Background()); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	// Two full passes over every pixel, each followed by a refresh
	if dev.setPixels != 2*4*3 {
		t.Errorf("expected %d pixel writes, got %d", 2*4*3, dev.setPixels)
	}
	if dev.shows != 2 {
		t.Errorf("expected 2 refreshes, got %d", dev.shows)
	}
}

func TestInkySink_Push(t *testing.T) {
	dev := &fakeInky{w: 4, h: 3}
	sink := NewInkySink(zap.NewNop(), dev)

	frame := imaging.New(4, 3, color.NRGBA{G: 255, A: 255})
	if err := sink.Push(context.Background(), frame); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if dev.lastFrame != frame {
		t.Error("expected the frame to be handed to the driver")
	}
	if dev.lastSat != inkySaturation {
		t.Errorf("expected saturation %v, got %v", inkySaturation, dev.lastSat)
	}
	if dev.shows != 1 {
		t.Errorf("expected 1 refresh, got %d", dev.shows)
	}
}
