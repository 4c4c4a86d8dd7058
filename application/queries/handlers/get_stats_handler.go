package handlers

import (
	"context"
	"fmt"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
)

// GetStatsHandler summarizes a user's rating activity
type GetStatsHandler struct {
	songLogRepo    ports.SongLogRepository
	comparisonRepo ports.ComparisonRepository
}

// NewGetStatsHandler creates a new handler instance
func NewGetStatsHandler(songLogRepo ports.SongLogRepository, comparisonRepo ports.ComparisonRepository) *GetStatsHandler {
	return &GetStatsHandler{
		songLogRepo:    songLogRepo,
		comparisonRepo: comparisonRepo,
	}
}

// Handle implements bus.QueryHandler
func (h *GetStatsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	statsQuery, ok := query.(queries.GetStatsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.handle(ctx, statsQuery)
}

func (h *GetStatsHandler) handle(ctx context.Context, query queries.GetStatsQuery) (*queries.StatsResult, error) {
	logs, err := h.songLogRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load song logs: %w", err)
	}

	totalRatings, err := h.comparisonRepo.CountByUserID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comparisons: %w", err)
	}

	result := &queries.StatsResult{
		TotalSongs:   len(logs),
		TotalRatings: totalRatings,
	}
	if len(logs) == 0 {
		return result, nil
	}

	sortByRating(logs)

	sum := 0.0
	for _, log := range logs {
		sum += log.DisplayRating()
	}
	result.AvgRating = sum / float64(len(logs))

	highest := queries.NewSongLogView(logs[0])
	lowest := queries.NewSongLogView(logs[len(logs)-1])
	result.HighestRatedSong = &highest
	result.LowestRatedSong = &lowest

	return result, nil
}
