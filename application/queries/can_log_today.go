package queries

import "errors"

// CanLogTodayQuery asks whether the user may log a song right now
type CanLogTodayQuery struct {
	UserID string
}

// Validate validates the CanLogTodayQuery
func (q CanLogTodayQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// CanLogTodayResult is advisory: the create command re-runs the gate and the
// store's uniqueness guard has the final say
type CanLogTodayResult struct {
	CanLog  bool   `json:"can_log"`
	Message string `json:"message,omitempty"`
}
