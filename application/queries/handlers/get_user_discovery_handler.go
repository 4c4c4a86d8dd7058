package handlers

import (
	"context"
	"fmt"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
	"tastebud/domain/services"
)

// recentPreviewCount is how many recent logs a discovery entry embeds
const recentPreviewCount = 3

// GetUserDiscoveryHandler ranks other users by taste similarity and attaches
// a preview of their recent activity
type GetUserDiscoveryHandler struct {
	prefRepo    ports.PreferenceRepository
	songLogRepo ports.SongLogRepository
	scorer      *services.SimilarityScorer
}

// NewGetUserDiscoveryHandler creates a new handler instance
func NewGetUserDiscoveryHandler(
	prefRepo ports.PreferenceRepository,
	songLogRepo ports.SongLogRepository,
	scorer *services.SimilarityScorer,
) *GetUserDiscoveryHandler {
	return &GetUserDiscoveryHandler{
		prefRepo:    prefRepo,
		songLogRepo: songLogRepo,
		scorer:      scorer,
	}
}

// Handle implements bus.QueryHandler
func (h *GetUserDiscoveryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	discoveryQuery, ok := query.(queries.GetUserDiscoveryQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.handle(ctx, discoveryQuery)
}

func (h *GetUserDiscoveryHandler) handle(ctx context.Context, query queries.GetUserDiscoveryQuery) ([]queries.DiscoveryUserResult, error) {
	limit := query.Limit
	if limit == 0 {
		limit = queries.DefaultDiscoveryLimit
	}

	ranked, err := rankSimilarUsers(ctx, h.prefRepo, h.scorer, query.UserID)
	if err != nil {
		return nil, err
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]queries.DiscoveryUserResult, 0, len(ranked))
	for _, ru := range ranked {
		recent, err := h.songLogRepo.GetRecentByUserID(ctx, ru.prefs.UserID(), recentPreviewCount)
		if err != nil {
			return nil, fmt.Errorf("failed to load recent logs: %w", err)
		}
		total, err := h.songLogRepo.CountByUserID(ctx, ru.prefs.UserID())
		if err != nil {
			return nil, fmt.Errorf("failed to count logs: %w", err)
		}

		results = append(results, queries.DiscoveryUserResult{
			User:            newFeedUserView(ru.prefs),
			SimilarityScore: ru.similarity.Score,
			TasteMatch:      ru.similarity.Label,
			RecentSongs:     queries.NewSongLogViews(recent),
			TotalSongs:      total,
		})
	}

	return results, nil
}
