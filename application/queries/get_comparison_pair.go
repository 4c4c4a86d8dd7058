package queries

import "errors"

// GetComparisonPairQuery asks for the next two songs a user should compare
type GetComparisonPairQuery struct {
	UserID string
}

// Validate validates the GetComparisonPairQuery
func (q GetComparisonPairQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// ComparisonPairResult is the pair offered for comparison
type ComparisonPairResult struct {
	Song1 SongLogView `json:"song1"`
	Song2 SongLogView `json:"song2"`
}
