package queries

import "errors"

// GetRankingsQuery asks for a user's songs ordered by rating
type GetRankingsQuery struct {
	UserID string
}

// Validate validates the GetRankingsQuery
func (q GetRankingsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// RankingsResult is the user's ranked song list, best first
type RankingsResult struct {
	Rankings []SongLogView `json:"rankings"`
}
