package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tastebud/application/ports"
	"tastebud/application/queries"
	"tastebud/application/queries/bus"
	"tastebud/domain/services"
	"tastebud/pkg/common"
)

// GetSocialFeedHandler composes the similarity-ranked feed: every log from
// every user with a positive similarity to the viewer, paginated.
type GetSocialFeedHandler struct {
	prefRepo    ports.PreferenceRepository
	songLogRepo ports.SongLogRepository
	scorer      *services.SimilarityScorer
}

// NewGetSocialFeedHandler creates a new handler instance
func NewGetSocialFeedHandler(
	prefRepo ports.PreferenceRepository,
	songLogRepo ports.SongLogRepository,
	scorer *services.SimilarityScorer,
) *GetSocialFeedHandler {
	return &GetSocialFeedHandler{
		prefRepo:    prefRepo,
		songLogRepo: songLogRepo,
		scorer:      scorer,
	}
}

// Handle implements bus.QueryHandler
func (h *GetSocialFeedHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	feedQuery, ok := query.(queries.GetSocialFeedQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.handle(ctx, feedQuery)
}

func (h *GetSocialFeedHandler) handle(ctx context.Context, query queries.GetSocialFeedQuery) (*queries.SocialFeedResult, error) {
	params := common.NormalizePagination(query.Page, query.PageSize)

	ranked, err := rankSimilarUsers(ctx, h.prefRepo, h.scorer, query.UserID)
	if err != nil {
		return nil, err
	}

	type feedEntry struct {
		item      queries.FeedItemResult
		createdAt time.Time
	}

	entries := make([]feedEntry, 0)
	for _, ru := range ranked {
		logs, err := h.songLogRepo.GetByUserID(ctx, ru.prefs.UserID())
		if err != nil {
			return nil, fmt.Errorf("failed to load feed logs: %w", err)
		}
		userView := newFeedUserView(ru.prefs)
		for _, log := range logs {
			entries = append(entries, feedEntry{
				item: queries.FeedItemResult{
					SongLog:         queries.NewSongLogView(log),
					User:            userView,
					SimilarityScore: ru.similarity.Score,
					TasteMatch:      ru.similarity.Label,
				},
				createdAt: log.CreatedAt(),
			})
		}
	}

	// Full ordering before pagination so concatenated pages reproduce the
	// unpaginated sequence exactly. Creation order compares on the entity
	// timestamp, not its serialized form, to keep sub-second precision.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.item.SimilarityScore != b.item.SimilarityScore {
			return a.item.SimilarityScore > b.item.SimilarityScore
		}
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.After(b.createdAt)
		}
		return a.item.SongLog.ID < b.item.SongLog.ID
	})

	items := make([]queries.FeedItemResult, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}

	total := len(items)
	start, end := common.PageBounds(params.Page, params.PageSize, total)
	meta := common.BuildPaginationMeta(params.Page, params.PageSize, total)

	return &queries.SocialFeedResult{
		FeedItems:   items[start:end],
		TotalCount:  total,
		Page:        params.Page,
		PageSize:    params.PageSize,
		HasNext:     meta.HasNext,
		HasPrevious: meta.HasPrevious,
	}, nil
}
