package domain

import (
	"context"
	"image"
)

// TrackSource reports what is currently playing.
// Polling must be cheap: the control loop calls it once per tick and once
// per idle-wait increment.
type TrackSource interface {
	// Poll returns the current playback state. A KindNothing result means
	// nothing is playing; KindUnknown means the source could not classify
	// the state and the caller should retry.
	Poll(ctx context.Context) (Playback, error)
}

// Sink is the display the composited frames are pushed to.
// Implementations wrap a concrete hardware family (Inky, Waveshare) or a
// file for development. Both operations touch hardware and may fail; the
// control loop logs such failures and keeps going.
type Sink interface {
	// Clear runs a full display clear cycle
	Clear(ctx context.Context) error

	// Push shows the frame on the display. The frame always matches the
	// configured canvas dimensions exactly.
	Push(ctx context.Context, frame image.Image) error
}

// CoverFetcher retrieves and decodes album artwork
type CoverFetcher interface {
	// FetchImage downloads the image at url and decodes it.
	// Returns an error if the image is unreachable or undecodable;
	// callers recover by substituting the fallback idle image.
	FetchImage(ctx context.Context, url string) (image.Image, error)
}
