package handlers

import (
	"context"
	"fmt"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
)

// CanLogTodayHandler answers the advisory eligibility check. The create
// command runs the same gate authoritatively inside the write path.
type CanLogTodayHandler struct {
	songLogRepo ports.SongLogRepository
	prefRepo    ports.PreferenceRepository
}

// NewCanLogTodayHandler creates a new handler instance
func NewCanLogTodayHandler(songLogRepo ports.SongLogRepository, prefRepo ports.PreferenceRepository) *CanLogTodayHandler {
	return &CanLogTodayHandler{
		songLogRepo: songLogRepo,
		prefRepo:    prefRepo,
	}
}

// Handle implements bus.QueryHandler
func (h *CanLogTodayHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	canLogQuery, ok := query.(queries.CanLogTodayQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	result, _, err := h.evaluate(ctx, canLogQuery.UserID)
	return result, err
}

// evaluate runs the gate and also returns today's log for callers that
// embed it, like the home status query
func (h *CanLogTodayHandler) evaluate(ctx context.Context, userID string) (*queries.CanLogTodayResult, *entities.SongLog, error) {
	prefs, err := h.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs == nil || prefs.IsEmpty() {
		return &queries.CanLogTodayResult{
			CanLog:  false,
			Message: "set up your music preferences before logging songs",
		}, nil, nil
	}

	todaysLog, err := h.songLogRepo.GetByOwnerAndDate(ctx, userID, valueobjects.Today())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check today's log: %w", err)
	}
	if todaysLog != nil {
		return &queries.CanLogTodayResult{
			CanLog:  false,
			Message: "you have already logged a song today",
		}, todaysLog, nil
	}

	return &queries.CanLogTodayResult{CanLog: true}, nil, nil
}
