package config

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Display model identifiers
const (
	ModelInky      = "inky"
	ModelWaveshare = "waveshare4"
	ModelFile      = "file"
)

// Text direction values
const (
	DirectionTopDown  = "top-down"
	DirectionBottomUp = "bottom-up"
)

// Background mode values
const (
	BackgroundFit    = "fit"
	BackgroundRepeat = "repeat"
)

// Config holds every option the service consumes. It is loaded once at
// startup and treated as an immutable snapshot afterwards.
type Config struct {
	// Display
	Model                 string `json:"model"` // inky, waveshare4, file
	Width                 int    `json:"width"`
	Height                int    `json:"height"`
	DisplayRefreshCounter int    `json:"display_refresh_counter"`
	OutputPath            string `json:"output_path"` // file sink only

	// Layout
	AlbumCoverSmall    bool   `json:"album_cover_small"`
	AlbumCoverSmallPx  int    `json:"album_cover_small_px"`
	OffsetPxLeft       int    `json:"offset_px_left"`
	OffsetPxRight      int    `json:"offset_px_right"`
	OffsetPxTop        int    `json:"offset_px_top"`
	OffsetPxBottom     int    `json:"offset_px_bottom"`
	OffsetTextPxShadow int    `json:"offset_text_px_shadow"`
	TextDirection      string `json:"text_direction"`  // top-down, bottom-up
	BackgroundMode     string `json:"background_mode"` // fit, repeat
	BackgroundBlur     int    `json:"background_blur"`

	// Fonts
	FontPath       string `json:"font_path"`
	FontSizeTitle  int    `json:"font_size_title"`
	FontSizeArtist int    `json:"font_size_artist"`

	// Idle behavior
	NoSongCover     string `json:"no_song_cover"`
	IdleFolder      string `json:"idle_folder"`
	IdleMode        string `json:"idle_mode"` // cycle, shuffle
	IdleShuffle     bool   `json:"idle_shuffle"`
	IdleDisplayTime int    `json:"idle_display_time"` // seconds

	// Polling
	Delay        int    `json:"delay"` // seconds between ticks
	MprisService string `json:"mpris_service"`
}

// Default returns a Config with the documented fallback values.
// Required fields (panel dimensions, fonts, fallback cover) stay empty and
// must come from the settings file.
func Default() *Config {
	return &Config{
		Model:                 ModelFile,
		DisplayRefreshCounter: 20,
		OutputPath:            "/tmp/spotipi-eink/frame.png",
		TextDirection:         DirectionTopDown,
		BackgroundMode:        BackgroundFit,
		IdleMode:              "cycle",
		IdleDisplayTime:       300,
		Delay:                 1,
		MprisService:          "org.mpris.MediaPlayer2.spotify",
	}
}

// Load reads the JSON settings file at path and merges it over the defaults
func Load(logger *zap.Logger, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.String("path", path),
		zap.String("model", cfg.Model),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.String("textDirection", cfg.TextDirection),
		zap.String("backgroundMode", cfg.BackgroundMode))

	return cfg, nil
}

// Validate checks that the required options are present. A missing required
// option is fatal at startup; everything else has a safe fallback.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height are required, got %dx%d", c.Width, c.Height)
	}
	if c.FontPath == "" {
		return fmt.Errorf("font_path is required")
	}
	if c.FontSizeTitle <= 0 || c.FontSizeArtist <= 0 {
		return fmt.Errorf("font_size_title and font_size_artist are required")
	}
	if c.NoSongCover == "" {
		return fmt.Errorf("no_song_cover is required")
	}
	if c.AlbumCoverSmall && c.AlbumCoverSmallPx <= 0 {
		return fmt.Errorf("album_cover_small_px is required when album_cover_small is set")
	}
	return nil
}

// ShuffleIdle reports whether idle images should be picked at random.
// Both the legacy idle_mode enum and the idle_shuffle flag enable it.
func (c *Config) ShuffleIdle() bool {
	return c.IdleShuffle || c.IdleMode == "shuffle"
}
