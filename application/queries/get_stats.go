package queries

import "errors"

// GetStatsQuery asks for a user's rating statistics
type GetStatsQuery struct {
	UserID string
}

// Validate validates the GetStatsQuery
func (q GetStatsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// StatsResult summarizes a user's rating activity. The highest and lowest
// entries are nil when the user has no logs.
type StatsResult struct {
	TotalSongs       int          `json:"total_songs"`
	TotalRatings     int          `json:"total_ratings"`
	AvgRating        float64      `json:"avg_rating"`
	HighestRatedSong *SongLogView `json:"highest_rated_song,omitempty"`
	LowestRatedSong  *SongLogView `json:"lowest_rated_song,omitempty"`
}
