package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tastebud/application/commands"
	"tastebud/application/commands/bus"
	"tastebud/application/ports"
	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
	domainevents "tastebud/domain/events"
	"tastebud/domain/services"
	apperrors "tastebud/pkg/errors"
	"tastebud/pkg/observability"
)

// RecordComparisonHandler applies one pairwise comparison: both Elo updates,
// both counter bumps, and the audit record commit atomically, serialized per
// user by the rating lock.
type RecordComparisonHandler struct {
	songLogRepo    ports.SongLogRepository
	comparisonRepo ports.ComparisonRepository
	ratingLock     ports.RatingLock
	publisher      ports.EventPublisher
	metrics        *observability.Metrics
	logger         *zap.Logger
}

// NewRecordComparisonHandler creates a new handler instance
func NewRecordComparisonHandler(
	songLogRepo ports.SongLogRepository,
	comparisonRepo ports.ComparisonRepository,
	ratingLock ports.RatingLock,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *RecordComparisonHandler {
	return &RecordComparisonHandler{
		songLogRepo:    songLogRepo,
		comparisonRepo: comparisonRepo,
		ratingLock:     ratingLock,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

// Handle implements bus.CommandHandler
func (h *RecordComparisonHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	recordCmd, ok := cmd.(commands.RecordComparisonCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.handle(ctx, recordCmd)
}

func (h *RecordComparisonHandler) handle(ctx context.Context, cmd commands.RecordComparisonCommand) (*commands.RecordComparisonResult, error) {
	winnerID, err := valueobjects.NewLogIDFromString(cmd.WinnerSongLogID)
	if err != nil {
		return nil, apperrors.NewInvalidComparisonError(err.Error())
	}
	loserID, err := valueobjects.NewLogIDFromString(cmd.LoserSongLogID())
	if err != nil {
		return nil, apperrors.NewInvalidComparisonError(err.Error())
	}

	// Serialize rating updates per user so concurrent comparisons never
	// interleave their read-modify-write cycles
	release, err := h.ratingLock.AcquireRatingLock(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	winner, err := h.loadOwnedLog(ctx, winnerID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	loser, err := h.loadOwnedLog(ctx, loserID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	newWinnerRating, newLoserRating := services.UpdatedRatings(winner.EloRating(), loser.EloRating())

	now := time.Now()
	winner.ApplyComparisonResult(newWinnerRating, now)
	loser.ApplyComparisonResult(newLoserRating, now)

	event, err := entities.NewComparisonEvent(cmd.UserID, winner.ID(), loser.ID(), newWinnerRating, newLoserRating)
	if err != nil {
		return nil, err
	}

	if err := h.comparisonRepo.ApplyComparison(ctx, winner, loser, event); err != nil {
		return nil, fmt.Errorf("failed to commit comparison: %w", err)
	}

	recorded := domainevents.NewComparisonRecorded(cmd.UserID, winner.ID(), loser.ID(), newWinnerRating, newLoserRating, now)
	if err := h.publisher.Publish(ctx, recorded); err != nil {
		h.logger.Warn("failed to publish comparison event",
			zap.String("userID", cmd.UserID),
			zap.Error(err),
		)
	}

	if h.metrics != nil {
		h.metrics.IncrementCounter("ComparisonsRecorded", 1, nil)
	}

	return &commands.RecordComparisonResult{
		WinnerRating: newWinnerRating,
		LoserRating:  newLoserRating,
	}, nil
}

// loadOwnedLog fetches a log and verifies it belongs to the comparing user
func (h *RecordComparisonHandler) loadOwnedLog(ctx context.Context, id valueobjects.LogID, userID string) (*entities.SongLog, error) {
	log, err := h.songLogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, apperrors.NewNotFoundError("song log")
	}
	if log.UserID() != userID {
		return nil, apperrors.NewInvalidComparisonError("song log does not belong to user")
	}
	return log, nil
}
