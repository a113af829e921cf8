// Package poller drives the service: it polls the track source, decides
// when a frame must be rebuilt, and pushes frames to the display sink.
package poller

import (
	"context"
	"image"
	"time"

	"github.com/Canterrain/spotipi-eink/internal/domain"
	"github.com/Canterrain/spotipi-eink/internal/gallery"
	"github.com/Canterrain/spotipi-eink/internal/render"
	"go.uber.org/zap"
)

const (
	// Sentinel debounce key stored while idle. Guaranteed distinct from any
	// real key so the next real track always triggers a rebuild.
	idleKey = "NO_SONG"

	// Ceiling for re-polling an ambiguous (unknown) classification within a
	// single tick. Exceeding it degrades to idle instead of failing the loop.
	maxAmbiguousRetries = 10
)

// Options carries the loop timing knobs
type Options struct {
	// TickDelay is the pause after a normal iteration
	TickDelay time.Duration
	// IdleTime bounds the low-frequency wait entered when nothing plays
	IdleTime time.Duration
	// IdleStep is the sleep increment inside the idle wait; the source is
	// polled once per increment so playback resumes promptly
	IdleStep time.Duration
}

// Poller is the single control loop. All mutable state (debounce key,
// refresh counter, gallery cursor) is owned here and touched only between
// poll iterations; no locking is needed.
type Poller struct {
	logger     *zap.Logger
	source     domain.TrackSource
	fetcher    domain.CoverFetcher
	sink       domain.Sink
	compositor *render.Compositor
	gallery    *gallery.Gallery
	refresh    *RefreshCounter
	opts       Options

	prevKey string
}

// New creates the control loop
func New(
	logger *zap.Logger,
	source domain.TrackSource,
	fetcher domain.CoverFetcher,
	sink domain.Sink,
	compositor *render.Compositor,
	gal *gallery.Gallery,
	refresh *RefreshCounter,
	opts Options,
) *Poller {
	return &Poller{
		logger:     logger,
		source:     source,
		fetcher:    fetcher,
		sink:       sink,
		compositor: compositor,
		gallery:    gal,
		refresh:    refresh,
		opts:       opts,
	}
}

// Run executes the loop until ctx is cancelled. A failed iteration is
// logged and the loop moves on; only cancellation ends it.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("Poll loop started")

	// Start from a clean panel
	if err := p.sink.Clear(ctx); err != nil {
		p.logger.Error("Startup display clear failed", zap.Error(err))
	}

	for {
		if ctx.Err() != nil {
			p.logger.Info("Poll loop stopped")
			return
		}
		if skipDelay := p.tick(ctx); skipDelay {
			continue
		}
		if !sleep(ctx, p.opts.TickDelay) {
			p.logger.Info("Poll loop stopped")
			return
		}
	}
}

// tick runs one poll iteration. It reports whether the trailing fixed delay
// should be skipped (the idle wait already consumed the time).
func (p *Poller) tick(ctx context.Context) bool {
	pb, err := p.poll(ctx)
	if err != nil {
		p.logger.Error("Poll failed", zap.Error(err))
		return false
	}

	if playing(pb) {
		key := pb.Track.Key()
		if key == p.prevKey {
			// Same track as last tick, nothing to rebuild
			return false
		}
		p.logger.Info("New track detected",
			zap.String("title", pb.Track.Title),
			zap.String("artist", pb.Track.Artist))
		p.prevKey = key
		p.renderTrack(ctx, pb.Track)
		return false
	}

	// Nothing playing (or an ad, which renders the same). The idle sentinel
	// also replaces an ad as "previous song" so the next real track is
	// never debounced away.
	p.logger.Info("No track detected, switching to idle image")
	p.prevKey = idleKey
	p.renderIdle(ctx)

	p.idleWait(ctx)
	return true
}

// idleWait sleeps in fixed increments up to the configured idle duration,
// polling the source each increment and bailing out as soon as playback
// resumes
func (p *Poller) idleWait(ctx context.Context) {
	p.logger.Debug("Entering idle wait",
		zap.Duration("max", p.opts.IdleTime),
		zap.Duration("step", p.opts.IdleStep))

	for elapsed := time.Duration(0); elapsed < p.opts.IdleTime; elapsed += p.opts.IdleStep {
		if !sleep(ctx, p.opts.IdleStep) {
			return
		}
		pb, err := p.poll(ctx)
		if err != nil {
			p.logger.Warn("Poll during idle wait failed", zap.Error(err))
			continue
		}
		if playing(pb) {
			p.logger.Info("Track detected during idle wait, resuming")
			return
		}
	}
}

// poll queries the source, retrying ambiguous classifications up to the
// ceiling within this one call. Exhausting the ceiling degrades to idle.
func (p *Poller) poll(ctx context.Context) (domain.Playback, error) {
	for attempt := 1; attempt <= maxAmbiguousRetries; attempt++ {
		pb, err := p.source.Poll(ctx)
		if err != nil {
			return domain.Playback{}, err
		}
		if pb.Kind != domain.KindUnknown {
			return pb, nil
		}
		p.logger.Debug("Ambiguous playback type, retrying", zap.Int("attempt", attempt))
	}
	p.logger.Warn("Ambiguous playback type persisted, treating as idle")
	return domain.Playback{Kind: domain.KindNothing}, nil
}

// renderTrack builds and pushes the frame for a playing track. A cover that
// cannot be fetched or decoded is replaced by the default idle image and
// composition retried with it.
func (p *Poller) renderTrack(ctx context.Context, track domain.Track) {
	cover, err := p.fetcher.FetchImage(ctx, track.CoverURL)
	if err != nil {
		p.logger.Warn("Failed to fetch cover, using fallback image",
			zap.String("url", track.CoverURL),
			zap.Error(err))
		cover = p.gallery.Fallback()
	}

	frame, err := p.compositor.Compose(cover, track.Title, track.Artist, true)
	if err != nil {
		p.logger.Error("Frame composition failed", zap.Error(err))
		return
	}
	p.push(ctx, frame)
}

// renderIdle builds and pushes the filler frame: gallery image, no text,
// no small cover
func (p *Poller) renderIdle(ctx context.Context) {
	frame, err := p.compositor.Compose(p.gallery.Image(), "", "", false)
	if err != nil {
		p.logger.Error("Idle frame composition failed", zap.Error(err))
		return
	}
	p.push(ctx, frame)
}

// push sends the frame to the sink, running a full clear first when one is
// due. Display I/O failures are logged, never fatal.
func (p *Poller) push(ctx context.Context, frame *image.NRGBA) {
	if p.refresh.Due() {
		p.logger.Info("Display refresh limit reached, clearing")
		if err := p.sink.Clear(ctx); err != nil {
			p.logger.Error("Display clear failed", zap.Error(err))
		}
	}
	if err := p.sink.Push(ctx, frame); err != nil {
		p.logger.Error("Display push failed", zap.Error(err))
	}
}

func playing(pb domain.Playback) bool {
	return pb.Kind == domain.KindTrack || pb.Kind == domain.KindEpisode
}

// sleep waits for d unless ctx is cancelled first. Reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
