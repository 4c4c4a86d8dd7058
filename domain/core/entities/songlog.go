package entities

import (
	"time"

	"tastebud/domain/core/valueobjects"
	"tastebud/domain/events"
	pkgerrors "tastebud/pkg/errors"
)

// InitialRating is the Elo seed every new log starts from
const InitialRating = 1500.0

// Display scale mapping: ratings in [1100, 1900] map linearly onto [1, 10]
const (
	displayFloor = 1100.0
	displaySpan  = 800.0
)

// SongLog is the main entity: one user's song of the day, carrying the
// rating state the comparison engine mutates.
// This is a rich domain model with encapsulated business logic
type SongLog struct {
	// Private fields ensure encapsulation
	id              valueobjects.LogID
	userID          string
	date            valueobjects.LogDate
	track           valueobjects.TrackRef
	note            string
	createdAt       time.Time
	eloRating       float64
	comparisonCount int
	lastComparedAt  *time.Time
	version         int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewSongLog creates a new song log with full business rule validation
func NewSongLog(userID string, date valueobjects.LogDate, track valueobjects.TrackRef, note string) (*SongLog, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if date.IsZero() {
		return nil, pkgerrors.NewValidationError("date cannot be empty")
	}
	if track.IsEmpty() {
		return nil, pkgerrors.NewValidationError("track cannot be empty")
	}

	now := time.Now()
	log := &SongLog{
		id:        valueobjects.NewLogID(),
		userID:    userID,
		date:      date,
		track:     track,
		note:      note,
		createdAt: now,
		eloRating: InitialRating,
		version:   1,
		events:    []events.DomainEvent{},
	}

	log.addEvent(events.NewSongLogCreated(log.id, userID, date, track.Title(), track.Artist(), now))

	return log, nil
}

// ReconstructSongLog reconstructs a song log from repository data with
// preserved timestamps and rating state
func ReconstructSongLog(
	id valueobjects.LogID,
	userID string,
	date valueobjects.LogDate,
	track valueobjects.TrackRef,
	note string,
	createdAt time.Time,
	eloRating float64,
	comparisonCount int,
	lastComparedAt *time.Time,
	version int,
) (*SongLog, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if track.IsEmpty() {
		return nil, pkgerrors.NewValidationError("track cannot be empty")
	}

	return &SongLog{
		id:              id,
		userID:          userID,
		date:            date,
		track:           track,
		note:            note,
		createdAt:       createdAt,
		eloRating:       eloRating,
		comparisonCount: comparisonCount,
		lastComparedAt:  lastComparedAt,
		version:         version,
		events:          []events.DomainEvent{},
	}, nil
}

// ID returns the log's unique identifier
func (l *SongLog) ID() valueobjects.LogID {
	return l.id
}

// UserID returns the owner's ID
func (l *SongLog) UserID() string {
	return l.userID
}

// Date returns the calendar day this log belongs to
func (l *SongLog) Date() valueobjects.LogDate {
	return l.date
}

// Track returns the logged track's metadata
func (l *SongLog) Track() valueobjects.TrackRef {
	return l.track
}

// Note returns the owner's free-text note
func (l *SongLog) Note() string {
	return l.note
}

// CreatedAt returns when the log was created
func (l *SongLog) CreatedAt() time.Time {
	return l.createdAt
}

// EloRating returns the current rating
func (l *SongLog) EloRating() float64 {
	return l.eloRating
}

// ComparisonCount returns how many comparisons this log has been part of
func (l *SongLog) ComparisonCount() int {
	return l.comparisonCount
}

// LastComparedAt returns when the log was last compared, nil if never
func (l *SongLog) LastComparedAt() *time.Time {
	return l.lastComparedAt
}

// Version returns the log's version for optimistic locking
func (l *SongLog) Version() int {
	return l.version
}

// DisplayRating maps the Elo rating onto the 1-10 scale shown to users
func (l *SongLog) DisplayRating() float64 {
	display := 1.0 + 9.0*(l.eloRating-displayFloor)/displaySpan
	if display < 1.0 {
		return 1.0
	}
	if display > 10.0 {
		return 10.0
	}
	return display
}

// ApplyComparisonResult records the outcome of a comparison: the new rating,
// a counter bump for pair-selection fairness, and the comparison time.
func (l *SongLog) ApplyComparisonResult(newRating float64, comparedAt time.Time) {
	l.eloRating = newRating
	l.comparisonCount++
	l.lastComparedAt = &comparedAt
	l.version++
}

// GetUncommittedEvents returns all uncommitted domain events
func (l *SongLog) GetUncommittedEvents() []events.DomainEvent {
	return l.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (l *SongLog) MarkEventsAsCommitted() {
	l.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (l *SongLog) addEvent(event events.DomainEvent) {
	l.events = append(l.events, event)
}
