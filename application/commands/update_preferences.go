package commands

import (
	"errors"

	"tastebud/domain/core/valueobjects"
)

// UpdatePreferencesCommand overwrites a user's taste profile in place.
// Artist entries arrive already normalized: bare legacy strings decode into
// ArtistRef at the JSON boundary.
type UpdatePreferencesCommand struct {
	UserID   string                   `json:"user_id" validate:"required"`
	Username string                   `json:"username"`
	Genres   []string                 `json:"genres" validate:"max=50,dive,min=1,max=60"`
	Artists  []valueobjects.ArtistRef `json:"artists" validate:"max=50"`
	Moods    []string                 `json:"moods" validate:"max=50,dive,min=1,max=60"`
}

// Validate validates the command
func (cmd UpdatePreferencesCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	for _, a := range cmd.Artists {
		if a.Name == "" {
			return errors.New("artist name is required")
		}
	}
	return nil
}
