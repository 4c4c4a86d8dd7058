package valueobjects

import "errors"

// TrackRef is the catalog metadata attached to a song log. It is stored as
// fetched; the service never reinterprets or enriches it.
type TrackRef struct {
	title       string
	artist      string
	album       string
	spotifyID   string
	albumArtURL string
	previewURL  string
	durationMs  int
	popularity  int
}

// NewTrackRef creates a track reference with the required fields
func NewTrackRef(title, artist string) (TrackRef, error) {
	if title == "" {
		return TrackRef{}, errors.New("track title cannot be empty")
	}
	if artist == "" {
		return TrackRef{}, errors.New("track artist cannot be empty")
	}
	return TrackRef{title: title, artist: artist}, nil
}

// ReconstructTrackRef rebuilds a track reference from stored data
func ReconstructTrackRef(title, artist, album, spotifyID, albumArtURL, previewURL string, durationMs, popularity int) TrackRef {
	return TrackRef{
		title:       title,
		artist:      artist,
		album:       album,
		spotifyID:   spotifyID,
		albumArtURL: albumArtURL,
		previewURL:  previewURL,
		durationMs:  durationMs,
		popularity:  popularity,
	}
}

// WithAlbum returns a copy with album metadata set
func (t TrackRef) WithAlbum(album, albumArtURL string) TrackRef {
	t.album = album
	t.albumArtURL = albumArtURL
	return t
}

// WithCatalogData returns a copy with catalog-sourced fields set
func (t TrackRef) WithCatalogData(spotifyID, previewURL string, durationMs, popularity int) TrackRef {
	t.spotifyID = spotifyID
	t.previewURL = previewURL
	t.durationMs = durationMs
	t.popularity = popularity
	return t
}

func (t TrackRef) Title() string       { return t.title }
func (t TrackRef) Artist() string      { return t.artist }
func (t TrackRef) Album() string       { return t.album }
func (t TrackRef) SpotifyID() string   { return t.spotifyID }
func (t TrackRef) AlbumArtURL() string { return t.albumArtURL }
func (t TrackRef) PreviewURL() string  { return t.previewURL }
func (t TrackRef) DurationMs() int     { return t.durationMs }
func (t TrackRef) Popularity() int     { return t.popularity }

// IsEmpty checks if the track reference has no title
func (t TrackRef) IsEmpty() bool {
	return t.title == ""
}

// Equals checks if two track references point at the same track
func (t TrackRef) Equals(other TrackRef) bool {
	if t.spotifyID != "" && other.spotifyID != "" {
		return t.spotifyID == other.spotifyID
	}
	return t.title == other.title && t.artist == other.artist
}
