package queries

import "errors"

// GetSocialFeedQuery asks for other users' logs ranked by taste similarity
type GetSocialFeedQuery struct {
	UserID   string
	Page     int
	PageSize int
}

// Validate validates the GetSocialFeedQuery
func (q GetSocialFeedQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Page < 0 || q.PageSize < 0 {
		return errors.New("page and page size must be positive")
	}
	return nil
}

// FeedItemResult is one entry in the social feed: another user's log plus
// the similarity standing between the viewer and that user
type FeedItemResult struct {
	SongLog         SongLogView  `json:"song_log"`
	User            FeedUserView `json:"user"`
	SimilarityScore float64      `json:"similarity_score"`
	TasteMatch      string       `json:"taste_match"`
}

// SocialFeedResult is a page of the similarity-ranked feed
type SocialFeedResult struct {
	FeedItems   []FeedItemResult `json:"feed_items"`
	TotalCount  int              `json:"total_count"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	HasNext     bool             `json:"has_next"`
	HasPrevious bool             `json:"has_previous"`
}
