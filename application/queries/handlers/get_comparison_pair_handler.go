package handlers

import (
	"context"
	"fmt"
	"time"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
	"tastebud/domain/services"
	apperrors "tastebud/pkg/errors"
)

// lastPairTTL bounds how long a served pair stays deprioritized. Long
// enough to cover a skip round-trip, short enough to expire idle sessions.
const lastPairTTL = 10 * time.Minute

// GetComparisonPairHandler picks the next two songs for a user to compare.
// The previously served pair is remembered so a skip does not bounce the
// same pair straight back when an alternative exists.
type GetComparisonPairHandler struct {
	songLogRepo ports.SongLogRepository
	selector    *services.PairSelector
	cache       ports.Cache
}

// NewGetComparisonPairHandler creates a new handler instance
func NewGetComparisonPairHandler(
	songLogRepo ports.SongLogRepository,
	selector *services.PairSelector,
	cache ports.Cache,
) *GetComparisonPairHandler {
	return &GetComparisonPairHandler{
		songLogRepo: songLogRepo,
		selector:    selector,
		cache:       cache,
	}
}

// Handle implements bus.QueryHandler
func (h *GetComparisonPairHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	pairQuery, ok := query.(queries.GetComparisonPairQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.handle(ctx, pairQuery)
}

func (h *GetComparisonPairHandler) handle(ctx context.Context, query queries.GetComparisonPairQuery) (*queries.ComparisonPairResult, error) {
	logs, err := h.songLogRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load song logs: %w", err)
	}
	if len(logs) < 2 {
		return nil, apperrors.NewInsufficientDataError("log at least two songs to start comparing")
	}

	var lastServed services.PairKey
	cacheKey := lastPairCacheKey(query.UserID)
	if cached, found := h.cache.Get(ctx, cacheKey); found {
		if key, ok := cached.(services.PairKey); ok {
			lastServed = key
		}
	}

	first, second, err := h.selector.SelectPair(logs, lastServed)
	if err != nil {
		return nil, err
	}

	_ = h.cache.Set(ctx, cacheKey, services.NewPairKey(first.ID(), second.ID()), lastPairTTL)

	return &queries.ComparisonPairResult{
		Song1: queries.NewSongLogView(first),
		Song2: queries.NewSongLogView(second),
	}, nil
}

func lastPairCacheKey(userID string) string {
	return "comparison:last_pair:" + userID
}
