package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	t.Run("equal ratings give even odds", func(t *testing.T) {
		assert.InDelta(t, 0.5, ExpectedScore(1500, 1500), 1e-9)
	})

	t.Run("higher rating is favored", func(t *testing.T) {
		favorite := ExpectedScore(1600, 1400)
		underdog := ExpectedScore(1400, 1600)

		assert.Greater(t, favorite, 0.5)
		assert.Less(t, underdog, 0.5)
	})

	t.Run("expectations sum to one", func(t *testing.T) {
		pairs := [][2]float64{
			{1500, 1500},
			{1200, 1800},
			{1432.5, 1511.25},
		}
		for _, pair := range pairs {
			sum := ExpectedScore(pair[0], pair[1]) + ExpectedScore(pair[1], pair[0])
			assert.InDelta(t, 1.0, sum, 1e-9)
		}
	})
}

func TestUpdatedRatings(t *testing.T) {
	t.Run("equal ratings split the K factor evenly", func(t *testing.T) {
		newWinner, newLoser := UpdatedRatings(1200, 1200)

		assert.InDelta(t, 1216.0, newWinner, 1e-9)
		assert.InDelta(t, 1184.0, newLoser, 1e-9)
	})

	t.Run("comparisons are zero sum", func(t *testing.T) {
		cases := [][2]float64{
			{1500, 1500},
			{1700, 1300},
			{1316.4, 1552.8},
		}
		for _, c := range cases {
			newWinner, newLoser := UpdatedRatings(c[0], c[1])
			assert.InDelta(t, c[0]+c[1], newWinner+newLoser, 1e-9)
		}
	})

	t.Run("winner gains and loser loses", func(t *testing.T) {
		newWinner, newLoser := UpdatedRatings(1800, 1200)

		assert.Greater(t, newWinner, 1800.0)
		assert.Less(t, newLoser, 1200.0)
	})

	t.Run("upset wins move ratings further", func(t *testing.T) {
		upsetWinner, _ := UpdatedRatings(1300, 1700)
		expectedWinner, _ := UpdatedRatings(1700, 1300)

		upsetGain := upsetWinner - 1300
		expectedGain := expectedWinner - 1700
		assert.Greater(t, upsetGain, expectedGain)
	})
}
