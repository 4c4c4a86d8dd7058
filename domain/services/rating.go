package services

import "math"

// KFactor controls how far a single comparison moves a rating. With equal K
// on both sides every comparison is exactly zero-sum.
const KFactor = 32.0

// ExpectedScore returns the probability the first rating beats the second
// under the Elo model
func ExpectedScore(rating, opponentRating float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponentRating-rating)/400.0))
}

// UpdatedRatings applies one comparison outcome: the winner scores 1, the
// loser 0, and each rating moves by K times the surprise of the result.
// The winner always strictly gains and the loser always strictly loses.
func UpdatedRatings(winnerRating, loserRating float64) (newWinner, newLoser float64) {
	expectedWinner := ExpectedScore(winnerRating, loserRating)
	expectedLoser := ExpectedScore(loserRating, winnerRating)

	newWinner = winnerRating + KFactor*(1.0-expectedWinner)
	newLoser = loserRating + KFactor*(0.0-expectedLoser)
	return newWinner, newLoser
}
