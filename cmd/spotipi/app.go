package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Canterrain/spotipi-eink/internal/config"
	"github.com/Canterrain/spotipi-eink/internal/display"
	"github.com/Canterrain/spotipi-eink/internal/domain"
	"github.com/Canterrain/spotipi-eink/internal/fetcher"
	"github.com/Canterrain/spotipi-eink/internal/gallery"
	"github.com/Canterrain/spotipi-eink/internal/poller"
	"github.com/Canterrain/spotipi-eink/internal/render"
	"github.com/Canterrain/spotipi-eink/internal/source"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Fixed sleep increment of the bounded idle wait
const idleStep = 5 * time.Second

// AppOptions is the full dependency graph, exported so tests can validate it
var AppOptions = fx.Options(
	fx.Provide(
		newLogger,
		newConfig,
		newLayout,
		newCompositor,
		newGallery,
		newFetcher,
		newSink,
		newSource,
		newRefreshCounter,
		newPoller,
	),
	fx.Invoke(registerHooks),
)

func runDaemon() error {
	app := fx.New(
		AppOptions,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}

	// Wait for interrupt signal
	<-ctx.Done()

	return app.Stop(context.Background())
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newConfig(logger *zap.Logger) (*config.Config, error) {
	return config.Load(logger, configPath)
}

// newLayout loads the fonts and fixes the layout snapshot for the process
func newLayout(cfg *config.Config) (render.Layout, error) {
	titleFace, err := render.LoadFace(cfg.FontPath, cfg.FontSizeTitle)
	if err != nil {
		return render.Layout{}, err
	}
	artistFace, err := render.LoadFace(cfg.FontPath, cfg.FontSizeArtist)
	if err != nil {
		return render.Layout{}, err
	}

	return render.Layout{
		Width:          cfg.Width,
		Height:         cfg.Height,
		OffsetLeft:     cfg.OffsetPxLeft,
		OffsetRight:    cfg.OffsetPxRight,
		OffsetTop:      cfg.OffsetPxTop,
		OffsetBottom:   cfg.OffsetPxBottom,
		SmallCover:     cfg.AlbumCoverSmall,
		SmallCoverPx:   cfg.AlbumCoverSmallPx,
		ShadowOffset:   cfg.OffsetTextPxShadow,
		TextDirection:  cfg.TextDirection,
		BackgroundMode: cfg.BackgroundMode,
		BackgroundBlur: cfg.BackgroundBlur,
		TitleFace:      titleFace,
		TitleSize:      cfg.FontSizeTitle,
		ArtistFace:     artistFace,
		ArtistSize:     cfg.FontSizeArtist,
	}, nil
}

func newCompositor(logger *zap.Logger, layout render.Layout) *render.Compositor {
	return render.NewCompositor(logger, layout)
}

func newGallery(logger *zap.Logger, cfg *config.Config) *gallery.Gallery {
	return gallery.New(logger, cfg.IdleFolder, cfg.NoSongCover, cfg.ShuffleIdle())
}

func newFetcher(logger *zap.Logger) domain.CoverFetcher {
	return fetcher.NewHTTPFetcher(logger)
}

func newSink(logger *zap.Logger, cfg *config.Config) (domain.Sink, error) {
	return display.New(logger, cfg)
}

func newSource(logger *zap.Logger, cfg *config.Config) (domain.TrackSource, error) {
	s, err := source.NewSource(logger, cfg.MprisService)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newRefreshCounter(cfg *config.Config) *poller.RefreshCounter {
	return poller.NewRefreshCounter(cfg.DisplayRefreshCounter)
}

func newPoller(
	logger *zap.Logger,
	cfg *config.Config,
	src domain.TrackSource,
	fet domain.CoverFetcher,
	sink domain.Sink,
	comp *render.Compositor,
	gal *gallery.Gallery,
	refresh *poller.RefreshCounter,
) *poller.Poller {
	return poller.New(logger, src, fet, sink, comp, gal, refresh, poller.Options{
		TickDelay: time.Duration(cfg.Delay) * time.Second,
		IdleTime:  time.Duration(cfg.IdleDisplayTime) * time.Second,
		IdleStep:  idleStep,
	})
}

// registerHooks ties the poll loop to the application lifecycle
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, p *poller.Poller) {
	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Spotipi eInk Display started")
			go func() {
				defer close(done)
				p.Run(loopCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
