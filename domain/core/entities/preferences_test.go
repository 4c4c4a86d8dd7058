package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastebud/domain/core/valueobjects"
)

func TestNewUserPreferences(t *testing.T) {
	prefs, err := NewUserPreferences("user-1", "alice")
	require.NoError(t, err)

	assert.True(t, prefs.IsEmpty())
	assert.Equal(t, 1, prefs.Version())
	assert.Equal(t, "alice", prefs.Username())

	_, err = NewUserPreferences("", "alice")
	assert.Error(t, err)
}

func TestPreferencesUpdate(t *testing.T) {
	t.Run("trims and dedupes tags keeping first casing", func(t *testing.T) {
		prefs, err := NewUserPreferences("user-1", "alice")
		require.NoError(t, err)

		err = prefs.Update(
			[]string{"Rock", " rock ", "", "Jazz"},
			nil,
			[]string{"Happy", "happy", "calm"},
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"Rock", "Jazz"}, prefs.Genres())
		assert.Equal(t, []string{"Happy", "calm"}, prefs.Moods())
		assert.Equal(t, 2, prefs.Version())
	})

	t.Run("dedupes artists by identity key", func(t *testing.T) {
		prefs, err := NewUserPreferences("user-1", "alice")
		require.NoError(t, err)

		err = prefs.Update(nil, []valueobjects.ArtistRef{
			{Name: "Radiohead"},
			{Name: "radiohead"},
			{ID: "spot-1", Name: "Bjork"},
			{ID: "spot-1", Name: "Björk"},
		}, nil)
		require.NoError(t, err)

		artists := prefs.Artists()
		require.Len(t, artists, 2)
		assert.Equal(t, "Radiohead", artists[0].Name)
		assert.Equal(t, "spot-1", artists[1].ID)
	})

	t.Run("rejects artists without a name", func(t *testing.T) {
		prefs, err := NewUserPreferences("user-1", "alice")
		require.NoError(t, err)

		err = prefs.Update(nil, []valueobjects.ArtistRef{{Name: "  "}}, nil)
		assert.Error(t, err)
	})

	t.Run("raises an updated event", func(t *testing.T) {
		prefs, err := NewUserPreferences("user-1", "alice")
		require.NoError(t, err)

		require.NoError(t, prefs.Update([]string{"rock"}, nil, nil))

		events := prefs.GetUncommittedEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "preferences.updated", events[0].GetEventType())
	})

	t.Run("empty update leaves an empty profile", func(t *testing.T) {
		prefs, err := NewUserPreferences("user-1", "alice")
		require.NoError(t, err)

		require.NoError(t, prefs.Update(nil, nil, nil))
		assert.True(t, prefs.IsEmpty())
	})
}

func TestSetUsername(t *testing.T) {
	prefs, err := NewUserPreferences("user-1", "alice")
	require.NoError(t, err)

	prefs.SetUsername("")
	assert.Equal(t, "alice", prefs.Username())

	prefs.SetUsername("alice-renamed")
	assert.Equal(t, "alice-renamed", prefs.Username())
}
