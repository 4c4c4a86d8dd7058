package entities

import (
	"time"

	"tastebud/domain/core/valueobjects"
	pkgerrors "tastebud/pkg/errors"
)

// ComparisonEvent is the immutable audit record of a single pairwise
// comparison, written exactly once in the same transaction as the rating
// update it describes.
type ComparisonEvent struct {
	id           valueobjects.LogID
	userID       string
	winnerLogID  valueobjects.LogID
	loserLogID   valueobjects.LogID
	winnerRating float64
	loserRating  float64
	createdAt    time.Time
}

// NewComparisonEvent creates the audit record for a decided comparison
func NewComparisonEvent(userID string, winnerLogID, loserLogID valueobjects.LogID, winnerRating, loserRating float64) (*ComparisonEvent, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if winnerLogID.IsZero() || loserLogID.IsZero() {
		return nil, pkgerrors.NewValidationError("comparison requires two log IDs")
	}
	if winnerLogID.Equals(loserLogID) {
		return nil, pkgerrors.NewInvalidComparisonError("cannot compare a song with itself")
	}

	return &ComparisonEvent{
		id:           valueobjects.NewLogID(),
		userID:       userID,
		winnerLogID:  winnerLogID,
		loserLogID:   loserLogID,
		winnerRating: winnerRating,
		loserRating:  loserRating,
		createdAt:    time.Now(),
	}, nil
}

// ReconstructComparisonEvent rebuilds an audit record from repository data
func ReconstructComparisonEvent(
	id valueobjects.LogID,
	userID string,
	winnerLogID, loserLogID valueobjects.LogID,
	winnerRating, loserRating float64,
	createdAt time.Time,
) *ComparisonEvent {
	return &ComparisonEvent{
		id:           id,
		userID:       userID,
		winnerLogID:  winnerLogID,
		loserLogID:   loserLogID,
		winnerRating: winnerRating,
		loserRating:  loserRating,
		createdAt:    createdAt,
	}
}

func (c *ComparisonEvent) ID() valueobjects.LogID          { return c.id }
func (c *ComparisonEvent) UserID() string                  { return c.userID }
func (c *ComparisonEvent) WinnerLogID() valueobjects.LogID { return c.winnerLogID }
func (c *ComparisonEvent) LoserLogID() valueobjects.LogID  { return c.loserLogID }
func (c *ComparisonEvent) WinnerRating() float64           { return c.winnerRating }
func (c *ComparisonEvent) LoserRating() float64            { return c.loserRating }
func (c *ComparisonEvent) CreatedAt() time.Time            { return c.createdAt }

// Involves reports whether the given log took part in this comparison
func (c *ComparisonEvent) Involves(logID valueobjects.LogID) bool {
	return c.winnerLogID.Equals(logID) || c.loserLogID.Equals(logID)
}
