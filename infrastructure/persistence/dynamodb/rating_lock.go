package dynamodb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tastebud/application/ports"
	apperrors "tastebud/pkg/errors"
)

const (
	// ratingLockDuration bounds how long one rating update may hold the
	// lock; expired locks count as free
	ratingLockDuration = 10 * time.Second
	// ratingLockTimeout bounds how long a contending update waits
	ratingLockTimeout = 3 * time.Second
)

// RatingLockService serializes rating updates per user on top of the
// distributed lock, so concurrent comparisons by the same user never
// interleave their read-modify-write cycles.
type RatingLockService struct {
	lock   *DistributedLock
	logger *zap.Logger
}

// NewRatingLockService creates a rating lock backed by the distributed lock
func NewRatingLockService(lock *DistributedLock, logger *zap.Logger) ports.RatingLock {
	return &RatingLockService{
		lock:   lock,
		logger: logger,
	}
}

// AcquireRatingLock implements ports.RatingLock. Contention past the retry
// budget surfaces as a retryable rate limit error.
func (s *RatingLockService) AcquireRatingLock(ctx context.Context, userID string) (func(), error) {
	resource := fmt.Sprintf("RATING#%s", userID)

	lock, err := s.lock.TryAcquireLock(ctx, resource, userID, ratingLockDuration, ratingLockTimeout)
	if err != nil {
		s.logger.Warn("failed to acquire rating lock",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewConflictError("another comparison is in progress, try again").WithRetryable(true)
	}

	release := func() {
		if err := lock.Release(context.Background()); err != nil {
			s.logger.Warn("failed to release rating lock",
				zap.String("userID", userID),
				zap.Error(err),
			)
		}
	}
	return release, nil
}
