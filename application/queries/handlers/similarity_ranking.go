package handlers

import (
	"context"
	"fmt"
	"sort"

	"tastebud/application/ports"
	"tastebud/domain/core/entities"
	"tastebud/domain/services"
)

// rankedUser pairs another user's profile with their similarity to the viewer
type rankedUser struct {
	prefs      *entities.UserPreferences
	similarity services.SimilarityResult
}

// rankSimilarUsers scores every other stored profile against the viewer and
// returns those with a positive score, best match first. Ties break on
// username so the ordering is stable across calls.
func rankSimilarUsers(
	ctx context.Context,
	prefRepo ports.PreferenceRepository,
	scorer *services.SimilarityScorer,
	viewerID string,
) ([]rankedUser, error) {
	viewer, err := prefRepo.GetByUserID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer preferences: %w", err)
	}
	if viewer == nil {
		return nil, nil
	}

	all, err := prefRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	ranked := make([]rankedUser, 0, len(all))
	for _, other := range all {
		if other.UserID() == viewerID {
			continue
		}
		result := scorer.Score(viewer, other)
		if result.Score <= 0 {
			continue
		}
		ranked = append(ranked, rankedUser{prefs: other, similarity: result})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].similarity.Score != ranked[j].similarity.Score {
			return ranked[i].similarity.Score > ranked[j].similarity.Score
		}
		return ranked[i].prefs.Username() < ranked[j].prefs.Username()
	})

	return ranked, nil
}
