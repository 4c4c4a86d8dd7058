package handlers

import (
	"context"
	"fmt"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
)

// GetRankingsHandler returns a user's songs ordered best-first
type GetRankingsHandler struct {
	songLogRepo ports.SongLogRepository
}

// NewGetRankingsHandler creates a new handler instance
func NewGetRankingsHandler(songLogRepo ports.SongLogRepository) *GetRankingsHandler {
	return &GetRankingsHandler{songLogRepo: songLogRepo}
}

// Handle implements bus.QueryHandler
func (h *GetRankingsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	rankingsQuery, ok := query.(queries.GetRankingsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.handle(ctx, rankingsQuery)
}

func (h *GetRankingsHandler) handle(ctx context.Context, query queries.GetRankingsQuery) (*queries.RankingsResult, error) {
	logs, err := h.songLogRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load song logs: %w", err)
	}

	sortByRating(logs)

	return &queries.RankingsResult{Rankings: queries.NewSongLogViews(logs)}, nil
}
