package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tastebud/application/commands"
	"tastebud/application/ports"
	"tastebud/domain/core/entities"
	apperrors "tastebud/pkg/errors"
)

func setupCreateHandler(t *testing.T) (*CreateSongLogHandler, *fakeSongLogRepo, *fakePrefRepo, *fakeCatalog, *fakePublisher) {
	t.Helper()

	songLogRepo := newFakeSongLogRepo()
	prefRepo := newFakePrefRepo()
	catalog := &fakeCatalog{tracks: map[string]*ports.CatalogTrack{
		"spot-track-1": {
			SpotifyID:   "spot-track-1",
			Title:       "Paranoid Android",
			Artist:      "Radiohead",
			Album:       "OK Computer",
			AlbumArtURL: "https://img/ok-computer",
			PreviewURL:  "https://preview/1",
			DurationMs:  387000,
			Popularity:  85,
		},
	}}
	publisher := &fakePublisher{}

	handler := NewCreateSongLogHandler(songLogRepo, prefRepo, catalog, publisher, zap.NewNop())
	return handler, songLogRepo, prefRepo, catalog, publisher
}

func seedPreferences(t *testing.T, prefRepo *fakePrefRepo, userID string) {
	t.Helper()
	prefs, err := entities.NewUserPreferences(userID, userID)
	require.NoError(t, err)
	require.NoError(t, prefs.Update([]string{"rock"}, nil, nil))
	require.NoError(t, prefRepo.Save(context.Background(), prefs))
}

func TestCreateSongLogHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a log from the catalog", func(t *testing.T) {
		handler, songLogRepo, prefRepo, _, publisher := setupCreateHandler(t)
		seedPreferences(t, prefRepo, "user-1")

		result, err := handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
			Note:      "on repeat all day",
		})
		require.NoError(t, err)

		log, ok := result.(*entities.SongLog)
		require.True(t, ok)
		assert.Equal(t, "Paranoid Android", log.Track().Title())
		assert.Equal(t, "Radiohead", log.Track().Artist())
		assert.Equal(t, "spot-track-1", log.Track().SpotifyID())
		assert.Equal(t, entities.InitialRating, log.EloRating())
		assert.Len(t, songLogRepo.logs, 1)
		assert.NotEmpty(t, publisher.published)
	})

	t.Run("creates a log from manual fields", func(t *testing.T) {
		handler, _, prefRepo, _, _ := setupCreateHandler(t)
		seedPreferences(t, prefRepo, "user-1")

		result, err := handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID: "user-1",
			Title:  "Obscure B-Side",
			Artist: "Unknown Band",
			Album:  "Demo Tape",
		})
		require.NoError(t, err)

		log := result.(*entities.SongLog)
		assert.Equal(t, "Obscure B-Side", log.Track().Title())
		assert.Empty(t, log.Track().SpotifyID())
	})

	t.Run("blocks users without preferences", func(t *testing.T) {
		handler, songLogRepo, _, _, _ := setupCreateHandler(t)

		_, err := handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsLoggingNotAllowed(err))
		assert.Empty(t, songLogRepo.logs)
	})

	t.Run("blocks users with an empty profile", func(t *testing.T) {
		handler, _, prefRepo, _, _ := setupCreateHandler(t)
		prefs, err := entities.NewUserPreferences("user-1", "user-1")
		require.NoError(t, err)
		require.NoError(t, prefRepo.Save(ctx, prefs))

		_, err = handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
		})

		assert.True(t, apperrors.IsLoggingNotAllowed(err))
	})

	t.Run("rejects a second log for the same day", func(t *testing.T) {
		handler, songLogRepo, prefRepo, _, _ := setupCreateHandler(t)
		seedPreferences(t, prefRepo, "user-1")

		_, err := handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
		})
		require.NoError(t, err)

		_, err = handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID: "user-1",
			Title:  "Another Song",
			Artist: "Another Artist",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsLoggingNotAllowed(err))
		assert.Len(t, songLogRepo.logs, 1)
	})

	t.Run("allows different days", func(t *testing.T) {
		handler, songLogRepo, prefRepo, _, _ := setupCreateHandler(t)
		seedPreferences(t, prefRepo, "user-1")

		_, err := handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
			Date:      "2026-08-29",
		})
		require.NoError(t, err)

		_, err = handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
			Date:      "2026-08-30",
		})
		require.NoError(t, err)

		assert.Len(t, songLogRepo.logs, 2)
	})

	t.Run("catalog failure leaves nothing behind", func(t *testing.T) {
		handler, songLogRepo, prefRepo, catalog, publisher := setupCreateHandler(t)
		seedPreferences(t, prefRepo, "user-1")
		catalog.lookupErr = apperrors.NewExternalError("spotify", assert.AnError)

		_, err := handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
		})

		require.Error(t, err)
		assert.Empty(t, songLogRepo.logs)
		assert.Empty(t, publisher.published)
	})

	t.Run("publish failure does not fail the command", func(t *testing.T) {
		handler, songLogRepo, prefRepo, _, publisher := setupCreateHandler(t)
		seedPreferences(t, prefRepo, "user-1")
		publisher.publishErr = assert.AnError

		_, err := handler.Handle(ctx, commands.CreateSongLogCommand{
			UserID:    "user-1",
			SpotifyID: "spot-track-1",
		})

		require.NoError(t, err)
		assert.Len(t, songLogRepo.logs, 1)
	})
}
