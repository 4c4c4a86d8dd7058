package queries

import "errors"

// GetHomeStatusQuery asks for the home screen state: today's log if present
// and whether logging is currently allowed
type GetHomeStatusQuery struct {
	UserID string
}

// Validate validates the GetHomeStatusQuery
func (q GetHomeStatusQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// HomeStatusResult combines the eligibility gate with today's entry
type HomeStatusResult struct {
	CanLog    bool         `json:"can_log"`
	Message   string       `json:"message,omitempty"`
	TodaysLog *SongLogView `json:"todays_log,omitempty"`
}
