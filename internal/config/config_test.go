package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// minimalSettings carries every required option and nothing else
const minimalSettings = `{
	"width": 640,
	"height": 400,
	"font_path": "/usr/share/fonts/test.ttf",
	"font_size_title": 45,
	"font_size_artist": 33,
	"no_song_cover": "/opt/spotipi/default.jpg"
}`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spotipi.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(zap.NewNop(), writeSettings(t, minimalSettings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != ModelFile {
		t.Errorf("expected default model %q, got %q", ModelFile, cfg.Model)
	}
	if cfg.DisplayRefreshCounter != 20 {
		t.Errorf("expected default refresh counter 20, got %d", cfg.DisplayRefreshCounter)
	}
	if cfg.TextDirection != DirectionTopDown {
		t.Errorf("expected default text direction, got %q", cfg.TextDirection)
	}
	if cfg.BackgroundMode != BackgroundFit {
		t.Errorf("expected default background mode, got %q", cfg.BackgroundMode)
	}
	if cfg.IdleDisplayTime != 300 {
		t.Errorf("expected default idle display time 300, got %d", cfg.IdleDisplayTime)
	}
	if cfg.Delay != 1 {
		t.Errorf("expected default delay 1, got %d", cfg.Delay)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	settings := `{
		"model": "waveshare4",
		"width": 640,
		"height": 400,
		"font_path": "/usr/share/fonts/test.ttf",
		"font_size_title": 45,
		"font_size_artist": 33,
		"no_song_cover": "/opt/spotipi/default.jpg",
		"text_direction": "bottom-up",
		"background_mode": "repeat",
		"display_refresh_counter": 5,
		"idle_mode": "shuffle"
	}`

	cfg, err := Load(zap.NewNop(), writeSettings(t, settings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != ModelWaveshare {
		t.Errorf("expected waveshare4, got %q", cfg.Model)
	}
	if cfg.TextDirection != DirectionBottomUp {
		t.Errorf("expected bottom-up, got %q", cfg.TextDirection)
	}
	if cfg.BackgroundMode != BackgroundRepeat {
		t.Errorf("expected repeat, got %q", cfg.BackgroundMode)
	}
	if cfg.DisplayRefreshCounter != 5 {
		t.Errorf("expected refresh counter 5, got %d", cfg.DisplayRefreshCounter)
	}
	if !cfg.ShuffleIdle() {
		t.Error("expected idle_mode=shuffle to enable shuffling")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name          string
		settings      string
		expectedError string
	}{
		{
			name:          "Missing Dimensions",
			settings:      `{"font_path": "/f.ttf", "font_size_title": 45, "font_size_artist": 33, "no_song_cover": "/d.jpg"}`,
			expectedError: "width and height are required",
		},
		{
			name:          "Missing Font Path",
			settings:      `{"width": 640, "height": 400, "font_size_title": 45, "font_size_artist": 33, "no_song_cover": "/d.jpg"}`,
			expectedError: "font_path is required",
		},
		{
			name:          "Missing Font Sizes",
			settings:      `{"width": 640, "height": 400, "font_path": "/f.ttf", "no_song_cover": "/d.jpg"}`,
			expectedError: "font_size_title and font_size_artist are required",
		},
		{
			name:          "Missing Fallback Cover",
			settings:      `{"width": 640, "height": 400, "font_path": "/f.ttf", "font_size_title": 45, "font_size_artist": 33}`,
			expectedError: "no_song_cover is required",
		},
		{
			name:          "Small Cover Without Size",
			settings:      `{"width": 640, "height": 400, "font_path": "/f.ttf", "font_size_title": 45, "font_size_artist": 33, "no_song_cover": "/d.jpg", "album_cover_small": true}`,
			expectedError: "album_cover_small_px is required",
		},
		{
			name:          "Malformed JSON",
			settings:      `{"width": 640,`,
			expectedError: "failed to parse settings file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(zap.NewNop(), writeSettings(t, tt.settings))
			if err == nil {
				t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
			}
			if !strings.Contains(err.Error(), tt.expectedError) {
				t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(zap.NewNop(), "/nonexistent/spotipi.json")
	if err == nil || !strings.Contains(err.Error(), "failed to read settings file") {
		t.Errorf("expected read failure, got %v", err)
	}
}
