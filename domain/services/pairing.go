package services

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
	pkgerrors "tastebud/pkg/errors"
)

// PairKey identifies an unordered pair of logs, so (A,B) and (B,A) collapse
// to the same key
type PairKey string

// NewPairKey builds the order-free key for two log IDs
func NewPairKey(a, b valueobjects.LogID) PairKey {
	x, y := a.String(), b.String()
	if x > y {
		x, y = y, x
	}
	return PairKey(x + "|" + y)
}

// PairSelector picks the next comparison pair from a user's logs. Selection
// favors fairness: fewest comparisons first, then least recently compared,
// with random tie-breaking so repeated draws vary.
type PairSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPairSelector creates a pair selector seeded from the given source
func NewPairSelector(seed int64) *PairSelector {
	return &PairSelector{rng: rand.New(rand.NewSource(seed))}
}

// SelectPair returns the two logs to compare next. lastServed is the pair
// most recently offered to this user; when the fairest pair would repeat it
// and an alternative exists, the alternative is served instead so a skipped
// pair does not come straight back.
func (s *PairSelector) SelectPair(logs []*entities.SongLog, lastServed PairKey) (*entities.SongLog, *entities.SongLog, error) {
	if len(logs) < 2 {
		return nil, nil, pkgerrors.NewInsufficientDataError("at least two logged songs are required for a comparison")
	}

	candidates := make([]*entities.SongLog, len(logs))
	copy(candidates, logs)

	// Shuffle before the stable sort so equal candidates land in random order
	s.mu.Lock()
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	s.mu.Unlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ComparisonCount() != b.ComparisonCount() {
			return a.ComparisonCount() < b.ComparisonCount()
		}
		return comparedEarlier(a.LastComparedAt(), b.LastComparedAt())
	})

	first, second := candidates[0], candidates[1]
	if len(candidates) >= 3 && NewPairKey(first.ID(), second.ID()) == lastServed {
		second = candidates[2]
	}

	return first, second, nil
}

// comparedEarlier orders nil (never compared) before any timestamp
func comparedEarlier(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}
