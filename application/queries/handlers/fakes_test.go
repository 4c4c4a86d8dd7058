package handlers

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
)

// fakeSongLogRepo is an in-memory read model ordered newest date first,
// matching the store's query order
type fakeSongLogRepo struct {
	mu   sync.Mutex
	logs []*entities.SongLog

	getErr error
}

func (r *fakeSongLogRepo) add(logs ...*entities.SongLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, logs...)
}

func (r *fakeSongLogRepo) Create(ctx context.Context, log *entities.SongLog) error {
	r.add(log)
	return nil
}

func (r *fakeSongLogRepo) GetByID(ctx context.Context, id valueobjects.LogID) (*entities.SongLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, log := range r.logs {
		if log.ID().Equals(id) {
			return log, nil
		}
	}
	return nil, nil
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
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var logs []*entities.SongLog
	for _, log := range r.logs {
		if log.UserID() == userID {
			logs = append(logs, log)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[j].Date().Before(logs[i].Date())
	})
	return logs, nil
}

func (r *fakeSongLogRepo) GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*entities.SongLog, error) {
	logs, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (r *fakeSongLogRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	logs, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(logs), nil
}

// fakeComparisonRepo returns a fixed comparison count
type fakeComparisonRepo struct {
	count int
}

func (r *fakeComparisonRepo) ApplyComparison(ctx context.Context, winner, loser *entities.SongLog, event *entities.ComparisonEvent) error {
	return nil
}

func (r *fakeComparisonRepo) GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.ComparisonEvent, error) {
	return nil, nil
}

func (r *fakeComparisonRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	return r.count, nil
}

// fakePrefRepo is an in-memory PreferenceRepository
type fakePrefRepo struct {
	mu    sync.Mutex
	prefs map[string]*entities.UserPreferences
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{prefs: make(map[string]*entities.UserPreferences)}
}

func (r *fakePrefRepo) Save(ctx context.Context, prefs *entities.UserPreferences) error {
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

// fakeCache is a TTL-less in-memory cache
type fakeCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]interface{})}
}

func (c *fakeCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.items[key]
	return value, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// buildLog reconstructs a log with explicit state for read-side tests
func buildLog(t *testing.T, userID, title, date string, rating float64, comparisonCount int, createdAt time.Time) *entities.SongLog {
	t.Helper()

	track, err := valueobjects.NewTrackRef(title, "Artist")
	require.NoError(t, err)
	logDate, err := valueobjects.NewLogDateFromString(date)
	require.NoError(t, err)

	log, err := entities.ReconstructSongLog(
		valueobjects.NewLogID(), userID, logDate, track, "",
		createdAt, rating, comparisonCount, nil, 1,
	)
	require.NoError(t, err)
	return log
}

// buildProfile reconstructs a taste profile for read-side tests
func buildProfile(t *testing.T, userID string, genres, moods []string) *entities.UserPreferences {
	t.Helper()
	prefs, err := entities.ReconstructUserPreferences(userID, userID, genres, nil, moods, time.Now(), 1)
	require.NoError(t, err)
	return prefs
}
