package commands

import (
	"errors"

	"tastebud/domain/core/valueobjects"
)

// CreateSongLogCommand represents the command to log a song for a day.
// The track is identified either by its catalog ID or by manual fields.
type CreateSongLogCommand struct {
	UserID    string `json:"user_id" validate:"required"`
	Username  string `json:"username"`
	SpotifyID string `json:"spotify_id"`
	Title     string `json:"title" validate:"max=300"`
	Artist    string `json:"artist" validate:"max=300"`
	Album     string `json:"album" validate:"max=300"`
	Note      string `json:"note" validate:"max=2000"`
	Date      string `json:"date"`
}

// Validate validates the command
func (cmd CreateSongLogCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.SpotifyID == "" && (cmd.Title == "" || cmd.Artist == "") {
		return errors.New("either a spotify ID or a title and artist are required")
	}
	if len(cmd.Note) > MaxNoteLength {
		return errors.New("note exceeds maximum length")
	}
	if cmd.Date != "" {
		if _, err := valueobjects.NewLogDateFromString(cmd.Date); err != nil {
			return err
		}
	}
	return nil
}

// LogDate resolves the target day, defaulting to today when unset
func (cmd CreateSongLogCommand) LogDate() valueobjects.LogDate {
	if cmd.Date == "" {
		return valueobjects.Today()
	}
	date, _ := valueobjects.NewLogDateFromString(cmd.Date)
	return date
}

const MaxNoteLength = 2000
