package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
	apperrors "tastebud/pkg/errors"
)

func testLog(t *testing.T, title string, comparisonCount int, lastComparedAt *time.Time) *entities.SongLog {
	t.Helper()

	track, err := valueobjects.NewTrackRef(title, "Test Artist")
	require.NoError(t, err)

	log, err := entities.ReconstructSongLog(
		valueobjects.NewLogID(),
		"user-1",
		valueobjects.Today(),
		track,
		"",
		time.Now(),
		entities.InitialRating,
		comparisonCount,
		lastComparedAt,
		1,
	)
	require.NoError(t, err)
	return log
}

func TestNewPairKey(t *testing.T) {
	a, b := valueobjects.NewLogID(), valueobjects.NewLogID()

	assert.Equal(t, NewPairKey(a, b), NewPairKey(b, a))
	assert.NotEqual(t, NewPairKey(a, b), NewPairKey(a, a))
}

func TestSelectPair(t *testing.T) {
	t.Run("requires at least two logs", func(t *testing.T) {
		selector := NewPairSelector(1)

		_, _, err := selector.SelectPair([]*entities.SongLog{testLog(t, "Only", 0, nil)}, "")

		require.Error(t, err)
		assert.True(t, apperrors.IsInsufficientData(err))
	})

	t.Run("prefers least compared logs", func(t *testing.T) {
		fresh1 := testLog(t, "Fresh 1", 0, nil)
		fresh2 := testLog(t, "Fresh 2", 0, nil)
		veteran := testLog(t, "Veteran", 8, nil)
		logs := []*entities.SongLog{veteran, fresh1, fresh2}

		selector := NewPairSelector(42)
		for i := 0; i < 20; i++ {
			first, second, err := selector.SelectPair(logs, "")
			require.NoError(t, err)

			got := NewPairKey(first.ID(), second.ID())
			assert.Equal(t, NewPairKey(fresh1.ID(), fresh2.ID()), got)
		}
	})

	t.Run("breaks count ties by least recently compared", func(t *testing.T) {
		old := time.Now().Add(-48 * time.Hour)
		recent := time.Now().Add(-time.Hour)

		never := testLog(t, "Never", 3, nil)
		stale := testLog(t, "Stale", 3, &old)
		hot := testLog(t, "Hot", 3, &recent)
		logs := []*entities.SongLog{hot, stale, never}

		selector := NewPairSelector(7)
		first, second, err := selector.SelectPair(logs, "")
		require.NoError(t, err)

		assert.Equal(t, NewPairKey(never.ID(), stale.ID()), NewPairKey(first.ID(), second.ID()))
	})

	t.Run("avoids repeating the last served pair when possible", func(t *testing.T) {
		logs := []*entities.SongLog{
			testLog(t, "One", 0, nil),
			testLog(t, "Two", 0, nil),
			testLog(t, "Three", 0, nil),
		}

		selector := NewPairSelector(99)
		lastServed := PairKey("")
		for i := 0; i < 50; i++ {
			first, second, err := selector.SelectPair(logs, lastServed)
			require.NoError(t, err)

			got := NewPairKey(first.ID(), second.ID())
			assert.NotEqual(t, lastServed, got, "iteration %d", i)
			lastServed = got
		}
	})

	t.Run("repeats when only one pair exists", func(t *testing.T) {
		one := testLog(t, "One", 0, nil)
		two := testLog(t, "Two", 0, nil)
		logs := []*entities.SongLog{one, two}
		only := NewPairKey(one.ID(), two.ID())

		selector := NewPairSelector(3)
		first, second, err := selector.SelectPair(logs, only)
		require.NoError(t, err)

		assert.Equal(t, only, NewPairKey(first.ID(), second.ID()))
	})

	t.Run("does not mutate the input slice order", func(t *testing.T) {
		logs := make([]*entities.SongLog, 5)
		for i := range logs {
			logs[i] = testLog(t, fmt.Sprintf("Song %d", i), i, nil)
		}
		snapshot := make([]*entities.SongLog, len(logs))
		copy(snapshot, logs)

		selector := NewPairSelector(11)
		_, _, err := selector.SelectPair(logs, "")
		require.NoError(t, err)

		assert.Equal(t, snapshot, logs)
	})
}
