package queries

import "errors"

// GetSimilarUsersQuery asks for the similarity ranking alone, without
// activity previews
type GetSimilarUsersQuery struct {
	UserID string
	Limit  int
}

// Validate validates the GetSimilarUsersQuery
func (q GetSimilarUsersQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Limit < 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

// SimilarUserResult is one user in the similarity ranking
type SimilarUserResult struct {
	User            FeedUserView `json:"user"`
	SimilarityScore float64      `json:"similarity_score"`
	TasteMatch      string       `json:"taste_match"`
}
