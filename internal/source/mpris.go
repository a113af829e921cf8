//go:build linux
// +build linux

package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/Canterrain/spotipi-eink/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPath          = "/org/mpris/MediaPlayer2"
	propPlaybackStatus = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
	propMetadata       = "org.mpris.MediaPlayer2.Player.Metadata"
)

// MprisSource reads the currently playing item from a media player over
// D-Bus MPRIS. Unlike a signal-driven monitor it is strictly pull-based:
// every Poll reads the player's properties fresh, which is what the
// polling control loop wants.
type MprisSource struct {
	logger  *zap.Logger
	conn    DBusClient // Interface for testability
	service string
}

// NewSource connects to the session bus and returns a source polling the
// given MPRIS service name
func NewSource(logger *zap.Logger, service string) (*MprisSource, error) {
	conn, err := NewStdDBusClient()
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}
	logger.Info("MPRIS source connected", zap.String("service", service))
	return &MprisSource{
		logger:  logger,
		conn:    conn,
		service: service,
	}, nil
}

// Close releases the D-Bus connection
func (s *MprisSource) Close() error {
	return s.conn.Close()
}

// Poll reads the player's current state.
// Returns KindNothing when the player is absent, paused or stopped, KindAd
// for advertisements, and KindUnknown when the reported properties have an
// unexpected shape; the caller retries unknowns a bounded number of times.
func (s *MprisSource) Poll(ctx context.Context) (domain.Playback, error) {
	statusVar, err := s.conn.GetProperty(s.service, mprisPath, propPlaybackStatus)
	if err != nil {
		// Player not on the bus means nothing is playing, not a failure
		if strings.Contains(err.Error(), "ServiceUnknown") {
			return domain.Playback{Kind: domain.KindNothing}, nil
		}
		return domain.Playback{}, fmt.Errorf("failed to get playback status: %w", err)
	}

	status, ok := statusVar.Value().(string)
	if !ok {
		return domain.Playback{Kind: domain.KindUnknown}, nil
	}
	if status != "Playing" {
		return domain.Playback{Kind: domain.KindNothing}, nil
	}

	metaVar, err := s.conn.GetProperty(s.service, mprisPath, propMetadata)
	if err != nil {
		return domain.Playback{}, fmt.Errorf("failed to get metadata: %w", err)
	}

	// SAFE CAST: some players return nil or unexpected types mid-transition
	metadata, ok := metaVar.Value().(map[string]dbus.Variant)
	if !ok {
		s.logger.Debug("Metadata variant is not a map", zap.String("service", s.service))
		return domain.Playback{Kind: domain.KindUnknown}, nil
	}

	return s.classify(metadata), nil
}

// classify maps raw MPRIS metadata to a Playback value
func (s *MprisSource) classify(metadata map[string]dbus.Variant) domain.Playback {
	trackID := trackIDString(metadata)

	// Spotify reports advertisements with an "ad" track id
	if strings.Contains(trackID, ":ad:") || strings.Contains(trackID, "/ad/") {
		return domain.Playback{Kind: domain.KindAd}
	}

	track := domain.Track{
		Title:    stringField(metadata, "xesam:title"),
		Artist:   artistField(metadata),
		CoverURL: stringField(metadata, "mpris:artUrl"),
	}

	// A playing report with neither title nor artwork is a transition
	// glitch; let the caller retry
	if track.Title == "" && track.CoverURL == "" {
		return domain.Playback{Kind: domain.KindUnknown}
	}

	kind := domain.KindTrack
	if strings.Contains(trackID, "episode") {
		kind = domain.KindEpisode
	}
	return domain.Playback{Kind: kind, Track: track}
}

// trackIDString extracts mpris:trackid, which players report either as an
// object path or a plain string
func trackIDString(metadata map[string]dbus.Variant) string {
	v, ok := metadata["mpris:trackid"]
	if !ok {
		return ""
	}
	switch id := v.Value().(type) {
	case dbus.ObjectPath:
		return string(id)
	case string:
		return id
	default:
		return ""
	}
}

func stringField(metadata map[string]dbus.Variant, key string) string {
	v, ok := metadata[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

// artistField joins all credited artists with ", ". Non-compliant players
// send a plain string instead of an array.
func artistField(metadata map[string]dbus.Variant) string {
	v, ok := metadata["xesam:artist"]
	if !ok {
		return ""
	}
	switch artists := v.Value().(type) {
	case []string:
		return strings.Join(artists, ", ")
	case string:
		return artists
	default:
		return ""
	}
}
