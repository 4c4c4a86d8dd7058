package events

import (
	"time"

	"tastebud/domain/core/valueobjects"
)

// SongLogCreated is raised when a user logs their song of the day
type SongLogCreated struct {
	BaseEvent
	LogID  valueobjects.LogID   `json:"log_id"`
	UserID string               `json:"user_id"`
	Date   valueobjects.LogDate `json:"date"`
	Title  string               `json:"title"`
	Artist string               `json:"artist"`
}

// NewSongLogCreated creates a SongLogCreated event
func NewSongLogCreated(logID valueobjects.LogID, userID string, date valueobjects.LogDate, title, artist string, timestamp time.Time) SongLogCreated {
	return SongLogCreated{
		BaseEvent: BaseEvent{
			AggregateID: logID.String(),
			EventType:   "songlog.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		LogID:  logID,
		UserID: userID,
		Date:   date,
		Title:  title,
		Artist: artist,
	}
}

// ComparisonRecorded is raised when a pairwise comparison updates two ratings
type ComparisonRecorded struct {
	BaseEvent
	UserID       string             `json:"user_id"`
	WinnerLogID  valueobjects.LogID `json:"winner_log_id"`
	LoserLogID   valueobjects.LogID `json:"loser_log_id"`
	WinnerRating float64            `json:"winner_rating"`
	LoserRating  float64            `json:"loser_rating"`
}

// NewComparisonRecorded creates a ComparisonRecorded event
func NewComparisonRecorded(userID string, winnerID, loserID valueobjects.LogID, winnerRating, loserRating float64, timestamp time.Time) ComparisonRecorded {
	return ComparisonRecorded{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   "comparison.recorded",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID:       userID,
		WinnerLogID:  winnerID,
		LoserLogID:   loserID,
		WinnerRating: winnerRating,
		LoserRating:  loserRating,
	}
}

// PreferencesUpdated is raised when a user overwrites their taste profile
type PreferencesUpdated struct {
	BaseEvent
	UserID      string `json:"user_id"`
	GenreCount  int    `json:"genre_count"`
	ArtistCount int    `json:"artist_count"`
	MoodCount   int    `json:"mood_count"`
}

// NewPreferencesUpdated creates a PreferencesUpdated event
func NewPreferencesUpdated(userID string, genreCount, artistCount, moodCount int, timestamp time.Time) PreferencesUpdated {
	return PreferencesUpdated{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   "preferences.updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID:      userID,
		GenreCount:  genreCount,
		ArtistCount: artistCount,
		MoodCount:   moodCount,
	}
}
