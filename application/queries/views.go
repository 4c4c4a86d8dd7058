package queries

import (
	"time"

	"tastebud/domain/core/entities"
)

// SongLogView is the read-side representation of a song log
type SongLogView struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Album           string  `json:"album,omitempty"`
	AlbumArtURL     string  `json:"album_art_url,omitempty"`
	PreviewURL      string  `json:"preview_url,omitempty"`
	SpotifyID       string  `json:"spotify_id,omitempty"`
	Note            string  `json:"note,omitempty"`
	EloRating       float64 `json:"elo_rating"`
	DisplayRating   float64 `json:"display_rating"`
	ComparisonCount int     `json:"comparison_count"`
	CreatedAt       string  `json:"created_at"`
}

// NewSongLogView maps a song log entity onto its read model
func NewSongLogView(log *entities.SongLog) SongLogView {
	track := log.Track()
	return SongLogView{
		ID:              log.ID().String(),
		Date:            log.Date().String(),
		Title:           track.Title(),
		Artist:          track.Artist(),
		Album:           track.Album(),
		AlbumArtURL:     track.AlbumArtURL(),
		PreviewURL:      track.PreviewURL(),
		SpotifyID:       track.SpotifyID(),
		Note:            log.Note(),
		EloRating:       log.EloRating(),
		DisplayRating:   log.DisplayRating(),
		ComparisonCount: log.ComparisonCount(),
		CreatedAt:       log.CreatedAt().UTC().Format(time.RFC3339),
	}
}

// NewSongLogViews maps a slice of logs, preserving order
func NewSongLogViews(logs []*entities.SongLog) []SongLogView {
	views := make([]SongLogView, 0, len(logs))
	for _, log := range logs {
		views = append(views, NewSongLogView(log))
	}
	return views
}

// FeedUserView is the owner summary embedded in feed and discovery items
type FeedUserView struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Genres   []string `json:"genres"`
	Artists  []string `json:"artists"`
}
