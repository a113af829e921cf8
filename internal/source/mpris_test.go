//go:build linux
// +build linux

package source

import (
	"context"
	"errors"
	"testing"

	"github.com/Canterrain/spotipi-eink/internal/domain"
	"github.com/Canterrain/spotipi-eink/internal/source/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const testService = "org.mpris.MediaPlayer2.spotify"

func newTestSource(t *testing.T) (*MprisSource, *mocks.MockDBusClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockDBusClient(ctrl)
	src := &MprisSource{
		logger:  zap.NewNop(),
		conn:    conn,
		service: testService,
	}
	return src, conn
}

func metadataVariant(fields map[string]dbus.Variant) dbus.Variant {
	return dbus.MakeVariant(fields)
}

func TestPoll_PlayingTrack(t *testing.T) {
	src, conn := newTestSource(t)

	conn.EXPECT().GetProperty(testService, mprisPath, propPlaybackStatus).
		Return(dbus.MakeVariant("Playing"), nil)
	conn.EXPECT().GetProperty(testService, mprisPath, propMetadata).
		Return(metadataVariant(map[string]dbus.Variant{
			"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath("/com/spotify/track/abc123")),
			"xesam:title":   dbus.MakeVariant("Harvest Moon"),
			"xesam:artist":  dbus.MakeVariant([]string{"Neil Young", "Crazy Horse"}),
			"mpris:artUrl":  dbus.MakeVariant("https://i.scdn.co/image/abc123"),
		}), nil)

	pb, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pb.Kind != domain.KindTrack {
		t.Fatalf("expected KindTrack, got %v", pb.Kind)
	}
	if pb.Track.Title != "Harvest Moon" {
		t.Errorf("unexpected title %q", pb.Track.Title)
	}
	if pb.Track.Artist != "Neil Young, Crazy Horse" {
		t.Errorf("expected joined artists, got %q", pb.Track.Artist)
	}
	if pb.Track.CoverURL != "https://i.scdn.co/image/abc123" {
		t.Errorf("unexpected cover url %q", pb.Track.CoverURL)
	}
}

func TestPoll_NotPlaying(t *testing.T) {
	for _, status := range []string{"Paused", "Stopped"} {
		t.Run(status, func(t *testing.T) {
			src, conn := newTestSource(t)
			conn.EXPECT().GetProperty(testService, mprisPath, propPlaybackStatus).
				Return(dbus.MakeVariant(status), nil)

			pb, err := src.Poll(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pb.Kind != domain.KindNothing {
				t.Errorf("expected KindNothing for status %q, got %v", status, pb.Kind)
			}
		})
	}
}

func TestPoll_PlayerNotOnBus(t *testing.T) {
	src, conn := newTestSource(t)
	conn.EXPECT().GetProperty(testService, mprisPath, propPlaybackStatus).
		Return(dbus.Variant{}, errors.New("org.freedesktop.DBus.Error.ServiceUnknown: the name is not activatable"))

	pb, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("an absent player should not be an error, got: %v", err)
	}
	if pb.Kind != domain.KindNothing {
		t.Errorf("expected KindNothing, got %v", pb.Kind)
	}
}

func TestPoll_BusError(t *testing.T) {
	src, conn := newTestSource(t)
	conn.EXPECT().GetProperty(testService, mprisPath, propPlaybackStatus).
		Return(dbus.Variant{}, errors.New("connection closed"))

	if _, err := src.Poll(context.Background()); err == nil {
		t.Fatal("expected an error for a broken bus connection")
	}
}

func TestPoll_Advertisement(t *testing.T) {
	for _, trackID := range []string{"spotify:ad:000000012c603a6b", "/com/spotify/ad/12345"} {
		t.Run(trackID, func(t *testing.T) {
			src, conn := newTestSource(t)
			conn.EXPECT().GetProperty(testService, mprisPath, propPlaybackStatus).
				Return(dbus.MakeVariant("Playing"), nil)
			conn.EXPECT().GetProperty(testService, mprisPath, propMetadata).
				Return(metadataVariant(map[string]dbus.Variant{
					"mpris:trackid": dbus.MakeVariant(trackID),
					"xesam:title":   dbus.MakeVariant("Advertisement"),
				}), nil)

			pb, err := src.Poll(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pb.Kind != domain.KindAd {
				t.Errorf("expected KindAd, got %v", pb.Kind)
			}
		})
	}
}

func TestPoll_Episode(t *testing.T) {
	src, conn := newTestSource(t)
	conn.EXPECT().GetProperty(testService, mprisPath, propPlaybackStatus).
		Return(dbus.MakeVariant("Playing"), nil)
	conn.EXPECT().GetProperty(testService, mprisPath, propMetadata).
		Return(metadataVariant(map[string]dbus.Variant{
			"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath("/com/spotify/episode/xyz")),
			"xesam:title":   dbus.MakeVariant("Episode 42"),
			"xesam:artist":  dbus.MakeVariant("Some Podcast"),
			"mpris:artUrl":  dbus.MakeVariant("https://i.scdn.co/image/ep"),
		}), nil)

	pb, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pb.Kind != domain.KindEpisode {
		t.Fatalf("expected KindEpisode, got %v", pb.Kind)
	}
	if pb.Track.Artist != "Some Podcast" {
		t.Errorf("a plain-string artist should pass through, got %q", pb.Track.Artist)
	}
}

func TestPoll_AmbiguousShapes(t *testing.T) {
	tests := []struct {
		name     string
		status   dbus.Variant
		metadata dbus.Variant
		skipMeta bool
	}{
		{
			name:     "status is not a string",
			status:   dbus.MakeVariant(int32(1)),
			skipMeta: true,
		},
		{
			name:     "metadata is not a map",
			status:   dbus.MakeVariant("Playing"),
			metadata: dbus.MakeVariant("garbage"),
		},
		{
			name:   "playing with empty title and art",
			status: dbus.MakeVariant("Playing"),
			metadata: metadataVariant(map[string]dbus.Variant{
				"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath("/com/spotify/track/abc")),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, conn := newTestSource(t)
			conn.EXPECT().GetProperty(testService, mprisPath, propPlaybackStatus).
				Return(tt.status, nil)
			if !tt.skipMeta {
				conn.EXPECT().GetProperty(testService, mprisPath, propMetadata).
					Return(tt.metadata, nil)
			}

			pb, err := src.Poll(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pb.Kind != domain.KindUnknown {
				t.Errorf("expected KindUnknown, got %v", pb.Kind)
			}
		})
	}
}

func TestClose(t *testing.T) {
	src, conn := newTestSource(t)
	conn.EXPECT().Close().Return(nil)

	if err := src.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
