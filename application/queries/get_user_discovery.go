package queries

import "errors"

// DefaultDiscoveryLimit caps how many users a discovery query returns when
// the caller does not ask for a specific count
const DefaultDiscoveryLimit = 10

// GetUserDiscoveryQuery asks for the users whose taste most resembles the
// viewer's, with recent activity previews
type GetUserDiscoveryQuery struct {
	UserID string
	Limit  int
}

// Validate validates the GetUserDiscoveryQuery
func (q GetUserDiscoveryQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Limit < 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

// DiscoveryUserResult is one similar user with a preview of their activity
type DiscoveryUserResult struct {
	User            FeedUserView  `json:"user"`
	SimilarityScore float64       `json:"similarity_score"`
	TasteMatch      string        `json:"taste_match"`
	RecentSongs     []SongLogView `json:"recent_songs"`
	TotalSongs      int           `json:"total_songs"`
}
