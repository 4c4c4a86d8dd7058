package handlers

import (
	"context"
	"fmt"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
	"tastebud/domain/services"
)

// GetSimilarUsersHandler returns the similarity ranking without previews
type GetSimilarUsersHandler struct {
	prefRepo ports.PreferenceRepository
	scorer   *services.SimilarityScorer
}

// NewGetSimilarUsersHandler creates a new handler instance
func NewGetSimilarUsersHandler(prefRepo ports.PreferenceRepository, scorer *services.SimilarityScorer) *GetSimilarUsersHandler {
	return &GetSimilarUsersHandler{
		prefRepo: prefRepo,
		scorer:   scorer,
	}
}

// Handle implements bus.QueryHandler
func (h *GetSimilarUsersHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	similarQuery, ok := query.(queries.GetSimilarUsersQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.handle(ctx, similarQuery)
}

func (h *GetSimilarUsersHandler) handle(ctx context.Context, query queries.GetSimilarUsersQuery) ([]queries.SimilarUserResult, error) {
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

	results := make([]queries.SimilarUserResult, 0, len(ranked))
	for _, ru := range ranked {
		results = append(results, queries.SimilarUserResult{
			User:            newFeedUserView(ru.prefs),
			SimilarityScore: ru.similarity.Score,
			TasteMatch:      ru.similarity.Label,
		})
	}

	return results, nil
}
