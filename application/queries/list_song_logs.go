package queries

import "errors"

// ListSongLogsQuery asks for the user's own logs, newest day first
type ListSongLogsQuery struct {
	UserID string
}

// Validate validates the ListSongLogsQuery
func (q ListSongLogsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// SongLogListResult is the user's log history
type SongLogListResult struct {
	SongLogs []SongLogView `json:"song_logs"`
	Total    int           `json:"total"`
}
