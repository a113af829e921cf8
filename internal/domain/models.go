package domain

// PlayKind classifies what the track source is currently playing
type PlayKind int

const (
	// KindNothing indicates no playback at all
	KindNothing PlayKind = iota
	// KindTrack indicates a regular music track
	KindTrack
	// KindEpisode indicates a podcast episode
	KindEpisode
	// KindAd indicates an advertisement is playing
	KindAd
	// KindUnknown indicates the source could not classify the playback;
	// callers are expected to retry a bounded number of times
	KindUnknown
)

// Track contains the displayable facts about the currently playing item.
// It is immutable once produced by the source.
type Track struct {
	// Title of the currently playing track or episode
	Title string
	// Artist name(s), joined with ", " when there are several
	Artist string
	// CoverURL is the URL of the album or show artwork
	CoverURL string
}

// Key returns the identity string used to suppress redundant frame rebuilds.
// Artist is deliberately excluded from the key: an artist-only change is not
// treated as a new track.
func (t Track) Key() string {
	return t.Title + t.CoverURL
}

// Playback is the result of one poll against the track source
type Playback struct {
	Kind  PlayKind
	Track Track
}
