package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
)

func profile(t *testing.T, userID string, genres []string, artists []valueobjects.ArtistRef, moods []string) *entities.UserPreferences {
	t.Helper()
	prefs, err := entities.ReconstructUserPreferences(userID, userID, genres, artists, moods, time.Now(), 1)
	require.NoError(t, err)
	return prefs
}

func artists(names ...string) []valueobjects.ArtistRef {
	refs := make([]valueobjects.ArtistRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, valueobjects.ArtistRef{Name: name})
	}
	return refs
}

func TestSimilarityScorer(t *testing.T) {
	scorer := NewSimilarityScorer()

	t.Run("identical profiles score a full match", func(t *testing.T) {
		a := profile(t, "a", []string{"rock", "jazz"}, artists("Radiohead"), []string{"happy"})
		b := profile(t, "b", []string{"rock", "jazz"}, artists("Radiohead"), []string{"happy"})

		result := scorer.Score(a, b)

		assert.InDelta(t, 1.0, result.Score, 1e-9)
		assert.Equal(t, LabelExcellentMatch, result.Label)
	})

	t.Run("disjoint profiles score zero with no label", func(t *testing.T) {
		a := profile(t, "a", []string{"rock"}, artists("Radiohead"), []string{"happy"})
		b := profile(t, "b", []string{"salsa"}, artists("Shakira"), []string{"sad"})

		result := scorer.Score(a, b)

		assert.Zero(t, result.Score)
		assert.Empty(t, result.Label)
	})

	t.Run("two empty profiles score zero", func(t *testing.T) {
		a := profile(t, "a", nil, nil, nil)
		b := profile(t, "b", nil, nil, nil)

		result := scorer.Score(a, b)

		assert.Zero(t, result.Score)
		assert.Empty(t, result.Label)
	})

	t.Run("weighted partial overlap", func(t *testing.T) {
		// Genres overlap 2 of 6, moods 1 of 3, artists not at all:
		// 0.4*(1/3) + 0.4*0 + 0.2*(1/3) = 0.2
		a := profile(t, "a",
			[]string{"rock", "pop", "jazz", "metal"},
			artists("Radiohead"),
			[]string{"happy", "calm"},
		)
		b := profile(t, "b",
			[]string{"rock", "pop", "indie", "folk"},
			artists("Bjork"),
			[]string{"happy", "sad"},
		)

		result := scorer.Score(a, b)

		assert.InDelta(t, 0.2, result.Score, 1e-9)
		assert.Equal(t, LabelSomeSimilarity, result.Label)
	})

	t.Run("score is symmetric", func(t *testing.T) {
		a := profile(t, "a", []string{"rock", "pop"}, artists("Radiohead", "Bjork"), []string{"happy"})
		b := profile(t, "b", []string{"pop", "jazz"}, artists("Bjork"), []string{"calm", "happy"})

		assert.Equal(t, scorer.Score(a, b).Score, scorer.Score(b, a).Score)
	})

	t.Run("genre matching ignores case and whitespace", func(t *testing.T) {
		a := profile(t, "a", []string{"Rock", " Jazz "}, nil, nil)
		b := profile(t, "b", []string{"rock", "jazz"}, nil, nil)

		result := scorer.Score(a, b)

		assert.InDelta(t, GenreWeight, result.Score, 1e-9)
	})

	t.Run("artists match by catalog ID regardless of display name", func(t *testing.T) {
		a := profile(t, "a", nil, []valueobjects.ArtistRef{{ID: "spot-1", Name: "The Beatles"}}, nil)
		b := profile(t, "b", nil, []valueobjects.ArtistRef{{ID: "spot-1", Name: "Beatles, The"}}, nil)

		result := scorer.Score(a, b)

		assert.InDelta(t, ArtistWeight, result.Score, 1e-9)
	})

	t.Run("artists without IDs match by case-folded name", func(t *testing.T) {
		a := profile(t, "a", nil, artists("radiohead"), nil)
		b := profile(t, "b", nil, artists("Radiohead"), nil)

		result := scorer.Score(a, b)

		assert.InDelta(t, ArtistWeight, result.Score, 1e-9)
	})
}

func TestLabelForScore(t *testing.T) {
	cases := []struct {
		score float64
		label string
	}{
		{1.0, LabelExcellentMatch},
		{0.75, LabelExcellentMatch},
		{0.74, LabelGreatMatch},
		{0.50, LabelGreatMatch},
		{0.49, LabelGoodMatch},
		{0.25, LabelGoodMatch},
		{0.24, LabelSomeSimilarity},
		{0.01, LabelSomeSimilarity},
		{0.0, ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.label, LabelForScore(c.score), "score %v", c.score)
	}
}
