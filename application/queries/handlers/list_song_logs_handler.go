package handlers

import (
	"context"
	"fmt"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
)

// ListSongLogsHandler returns the user's own log history, newest day first
type ListSongLogsHandler struct {
	songLogRepo ports.SongLogRepository
}

// NewListSongLogsHandler creates a new handler instance
func NewListSongLogsHandler(songLogRepo ports.SongLogRepository) *ListSongLogsHandler {
	return &ListSongLogsHandler{songLogRepo: songLogRepo}
}

// Handle implements bus.QueryHandler
func (h *ListSongLogsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	listQuery, ok := query.(queries.ListSongLogsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	logs, err := h.songLogRepo.GetByUserID(ctx, listQuery.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load song logs: %w", err)
	}

	return &queries.SongLogListResult{
		SongLogs: queries.NewSongLogViews(logs),
		Total:    len(logs),
	}, nil
}
