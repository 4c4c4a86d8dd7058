package ports

import (
	"context"
	"time"

	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
	"tastebud/domain/events"
)

// SongLogRepository defines the interface for song log persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type SongLogRepository interface {
	// Create persists a new log. The store enforces the one-log-per-day
	// rule and returns a conflict when (owner, date) already exists.
	Create(ctx context.Context, log *entities.SongLog) error

	// GetByID retrieves a log by its ID
	GetByID(ctx context.Context, id valueobjects.LogID) (*entities.SongLog, error)

	// GetByOwnerAndDate retrieves the owner's log for a specific day,
	// nil when no entry exists
	GetByOwnerAndDate(ctx context.Context, userID string, date valueobjects.LogDate) (*entities.SongLog, error)

	// GetByUserID retrieves all logs for a user, newest date first
	GetByUserID(ctx context.Context, userID string) ([]*entities.SongLog, error)

	// GetRecentByUserID retrieves the user's most recent logs, up to limit
	GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*entities.SongLog, error)

	// CountByUserID returns the number of logs a user has
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// ComparisonRepository persists comparison outcomes atomically with the
// rating updates they caused
type ComparisonRepository interface {
	// ApplyComparison commits both updated logs and the audit record in a
	// single transaction, guarded by each log's version
	ApplyComparison(ctx context.Context, winner, loser *entities.SongLog, event *entities.ComparisonEvent) error

	// GetByUserID retrieves a user's comparison history, newest first
	GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.ComparisonEvent, error)

	// CountByUserID returns how many comparisons a user has recorded
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// PreferenceRepository defines the interface for taste profile persistence
type PreferenceRepository interface {
	// Save persists a profile (create or update)
	Save(ctx context.Context, prefs *entities.UserPreferences) error

	// GetByUserID retrieves a user's profile, nil when none exists
	GetByUserID(ctx context.Context, userID string) (*entities.UserPreferences, error)

	// GetAll retrieves every stored profile, for cross-user scoring
	GetAll(ctx context.Context) ([]*entities.UserPreferences, error)
}

// CatalogTrack is the raw track metadata returned by the catalog, stored on
// the log verbatim
type CatalogTrack struct {
	SpotifyID   string
	Title       string
	Artist      string
	Album       string
	AlbumArtURL string
	PreviewURL  string
	DurationMs  int
	Popularity  int
}

// TrackCatalog resolves track metadata from the external music catalog
type TrackCatalog interface {
	// Lookup fetches a track by its catalog ID
	Lookup(ctx context.Context, spotifyID string) (*CatalogTrack, error)

	// Search finds tracks matching a free-text query
	Search(ctx context.Context, query string, limit int) ([]*CatalogTrack, error)
}

// RatingLock serializes rating updates per user
type RatingLock interface {
	// AcquireRatingLock blocks until the user's rating lock is held or the
	// retry budget is exhausted. The release function must always be called.
	AcquireRatingLock(ctx context.Context, userID string) (release func(), err error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}
