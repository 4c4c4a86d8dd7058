package services

import (
	"strings"

	"tastebud/domain/core/entities"
)

// Component weights for the combined similarity score. Genres and artists
// dominate; mood is a minor signal.
const (
	GenreWeight  = 0.4
	ArtistWeight = 0.4
	MoodWeight   = 0.2
)

// Similarity labels shown alongside scores. A pair scoring exactly zero
// gets no label and is excluded from similarity-gated views.
const (
	LabelExcellentMatch = "Excellent Match"
	LabelGreatMatch     = "Great Match"
	LabelGoodMatch      = "Good Match"
	LabelSomeSimilarity = "Some Similarity"
)

// SimilarityResult is the derived comparison of two taste profiles. It is
// computed on demand and never persisted.
type SimilarityResult struct {
	Score float64
	Label string
}

// SimilarityScorer compares taste profiles. Stateless and safe for
// concurrent use.
type SimilarityScorer struct{}

// NewSimilarityScorer creates a similarity scorer
func NewSimilarityScorer() *SimilarityScorer {
	return &SimilarityScorer{}
}

// Score computes the weighted Jaccard similarity of two profiles. The
// result is symmetric: Score(a, b) always equals Score(b, a).
func (s *SimilarityScorer) Score(a, b *entities.UserPreferences) SimilarityResult {
	genreScore := jaccard(tagSet(a.Genres()), tagSet(b.Genres()))
	artistScore := jaccard(artistSet(a), artistSet(b))
	moodScore := jaccard(tagSet(a.Moods()), tagSet(b.Moods()))

	score := GenreWeight*genreScore + ArtistWeight*artistScore + MoodWeight*moodScore

	return SimilarityResult{
		Score: score,
		Label: LabelForScore(score),
	}
}

// LabelForScore maps a score onto its display label, empty for zero
func LabelForScore(score float64) string {
	switch {
	case score >= 0.75:
		return LabelExcellentMatch
	case score >= 0.50:
		return LabelGreatMatch
	case score >= 0.25:
		return LabelGoodMatch
	case score > 0:
		return LabelSomeSimilarity
	default:
		return ""
	}
}

// jaccard returns |a ∩ b| / |a ∪ b|, with 0 when both sets are empty
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			set[tag] = true
		}
	}
	return set
}

func artistSet(p *entities.UserPreferences) map[string]bool {
	artists := p.Artists()
	set := make(map[string]bool, len(artists))
	for _, a := range artists {
		set[a.Key()] = true
	}
	return set
}
