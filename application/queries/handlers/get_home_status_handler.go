package handlers

import (
	"context"
	"fmt"

	"tastebud/application/queries"
	"tastebud/application/queries/bus"
)

// GetHomeStatusHandler combines the eligibility gate with today's entry for
// the home screen
type GetHomeStatusHandler struct {
	gate *CanLogTodayHandler
}

// NewGetHomeStatusHandler creates a new handler instance
func NewGetHomeStatusHandler(gate *CanLogTodayHandler) *GetHomeStatusHandler {
	return &GetHomeStatusHandler{gate: gate}
}

// Handle implements bus.QueryHandler
func (h *GetHomeStatusHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	homeQuery, ok := query.(queries.GetHomeStatusQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	gateResult, todaysLog, err := h.gate.evaluate(ctx, homeQuery.UserID)
	if err != nil {
		return nil, err
	}

	result := &queries.HomeStatusResult{
		CanLog:  gateResult.CanLog,
		Message: gateResult.Message,
	}
	if todaysLog != nil {
		view := queries.NewSongLogView(todaysLog)
		result.TodaysLog = &view
	}

	return result, nil
}
