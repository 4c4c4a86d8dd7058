package handlers

import (
	"context"
	"sync"

	"tastebud/application/ports"
	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
	"tastebud/domain/events"
	apperrors "tastebud/pkg/errors"
)

// fakeSongLogRepo is an in-memory SongLogRepository that mirrors the store's
// one-log-per-day conflict behavior
type fakeSongLogRepo struct {
	mu   sync.Mutex
	logs map[string]*entities.SongLog

	createErr error
	getErr    error
}

func newFakeSongLogRepo() *fakeSongLogRepo {
	return &fakeSongLogRepo{logs: make(map[string]*entities.SongLog)}
}

func (r *fakeSongLogRepo) Create(ctx context.Context, log *entities.SongLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.logs {
		if existing.UserID() == log.UserID() && existing.Date().Equals(log.Date()) {
			return apperrors.NewConflictError("a song log already exists for this day")
		}
	}
	r.logs[log.ID().String()] = log
	return nil
}

func (r *fakeSongLogRepo) GetByID(ctx context.Context, id valueobjects.LogID) (*entities.SongLog, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logs[id.String()], nil
}

func (r *fakeSongLogRepo) GetByOwnerAndDate(ctx context.Context, userID string, date valueobjects.LogDate) (*entities.SongLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, log := range r.logs {
		if log.UserID() == userID && log.Date().Equals(date) {
			return log, nil
		}
	}
	return nil, nil
}

func (r *fakeSongLogRepo) GetByUserID(ctx context.Context, userID string) ([]*entities.SongLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var logs []*entities.SongLog
	for _, log := range r.logs {
		if log.UserID() == userID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

func (r *fakeSongLogRepo) GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*entities.SongLog, error) {
	logs, _ := r.GetByUserID(ctx, userID)
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (r *fakeSongLogRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	logs, _ := r.GetByUserID(ctx, userID)
	return len(logs), nil
}

// fakeComparisonRepo records applied comparisons
type fakeComparisonRepo struct {
	mu       sync.Mutex
	applied  []*entities.ComparisonEvent
	applyErr error
}

func (r *fakeComparisonRepo) ApplyComparison(ctx context.Context, winner, loser *entities.SongLog, event *entities.ComparisonEvent) error {
	if r.applyErr != nil {
		return r.applyErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, event)
	return nil
}

func (r *fakeComparisonRepo) GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.ComparisonEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applied, nil
}

func (r *fakeComparisonRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.applied), nil
}

// fakePrefRepo is an in-memory PreferenceRepository
type fakePrefRepo struct {
	mu    sync.Mutex
	prefs map[string]*entities.UserPreferences

	saveErr error
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{prefs: make(map[string]*entities.UserPreferences)}
}

func (r *fakePrefRepo) Save(ctx context.Context, prefs *entities.UserPreferences) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[prefs.UserID()] = prefs
	return nil
}

func (r *fakePrefRepo) GetByUserID(ctx context.Context, userID string) (*entities.UserPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prefs[userID], nil
}

func (r *fakePrefRepo) GetAll(ctx context.Context) ([]*entities.UserPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entities.UserPreferences, 0, len(r.prefs))
	for _, p := range r.prefs {
		all = append(all, p)
	}
	return all, nil
}

// fakeCatalog serves canned tracks by ID
type fakeCatalog struct {
	tracks    map[string]*ports.CatalogTrack
	lookupErr error
}

func (c *fakeCatalog) Lookup(ctx context.Context, spotifyID string) (*ports.CatalogTrack, error) {
	if c.lookupErr != nil {
		return nil, c.lookupErr
	}
	track, ok := c.tracks[spotifyID]
	if !ok {
		return nil, apperrors.NewNotFoundError("track")
	}
	return track, nil
}

func (c *fakeCatalog) Search(ctx context.Context, query string, limit int) ([]*ports.CatalogTrack, error) {
	return nil, nil
}

// fakePublisher collects published events
type fakePublisher struct {
	mu         sync.Mutex
	published  []events.DomainEvent
	publishErr error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

func (p *fakePublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, batch...)
	return nil
}

// fakeRatingLock hands out the lock immediately and counts acquisitions
type fakeRatingLock struct {
	mu         sync.Mutex
	acquired   int
	released   int
	acquireErr error
}

func (l *fakeRatingLock) AcquireRatingLock(ctx context.Context, userID string) (func(), error) {
	if l.acquireErr != nil {
		return nil, l.acquireErr
	}
	l.mu.Lock()
	l.acquired++
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}
