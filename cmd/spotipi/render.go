package main

import (
	"image"

	"github.com/Canterrain/spotipi-eink/internal/config"
	"github.com/Canterrain/spotipi-eink/internal/gallery"
	"github.com/Canterrain/spotipi-eink/internal/render"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderOut    string
	renderTitle  string
	renderArtist string
	renderCover  string
	renderSmall  bool
)

// renderCmd composes a single frame to a PNG file. Handy for tuning layout
// options without attached hardware or a playing track.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "compose one frame to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := config.Load(logger, configPath)
		if err != nil {
			return err
		}

		layout, err := newLayout(cfg)
		if err != nil {
			return err
		}

		var src image.Image
		if renderCover != "" {
			src, err = imaging.Open(renderCover)
			if err != nil {
				return err
			}
		} else {
			src = gallery.New(logger, cfg.IdleFolder, cfg.NoSongCover, cfg.ShuffleIdle()).Image()
		}

		frame, err := render.NewCompositor(logger, layout).Compose(src, renderTitle, renderArtist, renderSmall)
		if err != nil {
			return err
		}

		if err := imaging.Save(frame, renderOut); err != nil {
			return err
		}
		logger.Info("Frame rendered", zap.String("out", renderOut))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "frame.png", "output PNG path")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "title text")
	renderCmd.Flags().StringVar(&renderArtist, "artist", "", "artist text")
	renderCmd.Flags().StringVar(&renderCover, "cover", "", "cover image path (defaults to an idle image)")
	renderCmd.Flags().BoolVar(&renderSmall, "small-cover", true, "overlay the small cover thumbnail")
}
