package commands

import (
	"errors"
)

// RecordComparisonCommand represents a decided pairwise comparison between
// two of the user's own song logs
type RecordComparisonCommand struct {
	UserID            string `json:"user_id" validate:"required"`
	SongLogID         string `json:"song_log_id" validate:"required"`
	ComparedSongLogID string `json:"compared_song_log_id" validate:"required"`
	WinnerSongLogID   string `json:"winner_song_log_id" validate:"required"`
}

// Validate validates the command
func (cmd RecordComparisonCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.SongLogID == "" || cmd.ComparedSongLogID == "" {
		return errors.New("both song log IDs are required")
	}
	if cmd.SongLogID == cmd.ComparedSongLogID {
		return errors.New("cannot compare a song with itself")
	}
	if cmd.WinnerSongLogID != cmd.SongLogID && cmd.WinnerSongLogID != cmd.ComparedSongLogID {
		return errors.New("winner must be one of the two compared songs")
	}
	return nil
}

// LoserSongLogID returns the ID of the log that lost the comparison
func (cmd RecordComparisonCommand) LoserSongLogID() string {
	if cmd.WinnerSongLogID == cmd.SongLogID {
		return cmd.ComparedSongLogID
	}
	return cmd.SongLogID
}

// RecordComparisonResult carries both post-update ratings back to the caller
type RecordComparisonResult struct {
	WinnerRating float64 `json:"winner_rating"`
	LoserRating  float64 `json:"loser_rating"`
}
