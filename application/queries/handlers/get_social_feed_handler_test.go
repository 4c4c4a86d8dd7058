package handlers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastebud/application/queries"
	"tastebud/domain/services"
)

func TestGetSocialFeedHandler(t *testing.T) {
	ctx := context.Background()
	scorer := services.NewSimilarityScorer()

	t.Run("excludes the viewer and zero-similarity users", func(t *testing.T) {
		prefRepo := newFakePrefRepo()
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "viewer", []string{"rock"}, nil)))
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "kindred", []string{"rock"}, nil)))
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "stranger", []string{"salsa"}, nil)))

		songLogRepo := &fakeSongLogRepo{}
		songLogRepo.add(
			buildLog(t, "viewer", "Own Song", "2026-08-30", 1500, 0, time.Now()),
			buildLog(t, "kindred", "Kindred Song", "2026-08-30", 1500, 0, time.Now()),
			buildLog(t, "stranger", "Stranger Song", "2026-08-30", 1500, 0, time.Now()),
		)

		handler := NewGetSocialFeedHandler(prefRepo, songLogRepo, scorer)

		result, err := handler.Handle(ctx, queries.GetSocialFeedQuery{UserID: "viewer", Page: 1, PageSize: 20})
		require.NoError(t, err)

		feed := result.(*queries.SocialFeedResult)
		require.Len(t, feed.FeedItems, 1)
		assert.Equal(t, "kindred", feed.FeedItems[0].User.UserID)
		assert.Equal(t, "Kindred Song", feed.FeedItems[0].SongLog.Title)
	})

	t.Run("orders by similarity best first", func(t *testing.T) {
		prefRepo := newFakePrefRepo()
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "viewer", []string{"rock", "jazz"}, []string{"happy"})))
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "twin", []string{"rock", "jazz"}, []string{"happy"})))
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "acquaintance", []string{"rock", "metal"}, nil)))

		songLogRepo := &fakeSongLogRepo{}
		songLogRepo.add(
			buildLog(t, "twin", "Twin Song", "2026-08-30", 1500, 0, time.Now()),
			buildLog(t, "acquaintance", "Acquaintance Song", "2026-08-30", 1500, 0, time.Now()),
		)

		handler := NewGetSocialFeedHandler(prefRepo, songLogRepo, scorer)

		result, err := handler.Handle(ctx, queries.GetSocialFeedQuery{UserID: "viewer", Page: 1, PageSize: 20})
		require.NoError(t, err)

		feed := result.(*queries.SocialFeedResult)
		require.Len(t, feed.FeedItems, 2)
		assert.Equal(t, "twin", feed.FeedItems[0].User.UserID)
		assert.Equal(t, services.LabelExcellentMatch, feed.FeedItems[0].TasteMatch)
		assert.Greater(t, feed.FeedItems[0].SimilarityScore, feed.FeedItems[1].SimilarityScore)
	})

	t.Run("same-second entries keep true creation order", func(t *testing.T) {
		prefRepo := newFakePrefRepo()
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "viewer", []string{"rock"}, nil)))
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "kindred", []string{"rock"}, nil)))

		// Both timestamps serialize to the same second
		base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		songLogRepo := &fakeSongLogRepo{}
		songLogRepo.add(
			buildLog(t, "kindred", "Logged First", "2026-08-29", 1500, 0, base),
			buildLog(t, "kindred", "Logged Last", "2026-08-30", 1500, 0, base.Add(500*time.Millisecond)),
		)

		handler := NewGetSocialFeedHandler(prefRepo, songLogRepo, scorer)

		result, err := handler.Handle(ctx, queries.GetSocialFeedQuery{UserID: "viewer", Page: 1, PageSize: 20})
		require.NoError(t, err)

		feed := result.(*queries.SocialFeedResult)
		require.Len(t, feed.FeedItems, 2)
		assert.Equal(t, "Logged Last", feed.FeedItems[0].SongLog.Title)
		assert.Equal(t, "Logged First", feed.FeedItems[1].SongLog.Title)
	})

	t.Run("pages concatenate into the full sequence", func(t *testing.T) {
		prefRepo := newFakePrefRepo()
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "viewer", []string{"rock"}, nil)))
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "kindred", []string{"rock"}, nil)))

		songLogRepo := &fakeSongLogRepo{}
		base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 25; i++ {
			date := base.AddDate(0, 0, i).Format("2006-01-02")
			songLogRepo.add(buildLog(t, "kindred", fmt.Sprintf("Song %02d", i), date, 1500, 0, base.AddDate(0, 0, i)))
		}

		handler := NewGetSocialFeedHandler(prefRepo, songLogRepo, scorer)

		full, err := handler.Handle(ctx, queries.GetSocialFeedQuery{UserID: "viewer", Page: 1, PageSize: 100})
		require.NoError(t, err)
		fullFeed := full.(*queries.SocialFeedResult)
		require.Len(t, fullFeed.FeedItems, 25)

		var concatenated []string
		for page := 1; page <= 3; page++ {
			result, err := handler.Handle(ctx, queries.GetSocialFeedQuery{UserID: "viewer", Page: page, PageSize: 10})
			require.NoError(t, err)

			feed := result.(*queries.SocialFeedResult)
			assert.Equal(t, 25, feed.TotalCount)
			assert.Equal(t, page < 3, feed.HasNext, "page %d", page)
			assert.Equal(t, page > 1, feed.HasPrevious, "page %d", page)

			for _, item := range feed.FeedItems {
				concatenated = append(concatenated, item.SongLog.ID)
			}
		}

		require.Len(t, concatenated, 25)
		for i, item := range fullFeed.FeedItems {
			assert.Equal(t, item.SongLog.ID, concatenated[i], "position %d", i)
		}
	})

	t.Run("out of range pages are empty not errors", func(t *testing.T) {
		prefRepo := newFakePrefRepo()
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "viewer", []string{"rock"}, nil)))
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "kindred", []string{"rock"}, nil)))

		songLogRepo := &fakeSongLogRepo{}
		songLogRepo.add(buildLog(t, "kindred", "Song", "2026-08-30", 1500, 0, time.Now()))

		handler := NewGetSocialFeedHandler(prefRepo, songLogRepo, scorer)

		result, err := handler.Handle(ctx, queries.GetSocialFeedQuery{UserID: "viewer", Page: 5, PageSize: 20})
		require.NoError(t, err)

		feed := result.(*queries.SocialFeedResult)
		assert.Empty(t, feed.FeedItems)
		assert.Equal(t, 1, feed.TotalCount)
		assert.False(t, feed.HasNext)
	})

	t.Run("viewer without a profile gets an empty feed", func(t *testing.T) {
		prefRepo := newFakePrefRepo()
		require.NoError(t, prefRepo.Save(ctx, buildProfile(t, "kindred", []string{"rock"}, nil)))

		songLogRepo := &fakeSongLogRepo{}
		songLogRepo.add(buildLog(t, "kindred", "Song", "2026-08-30", 1500, 0, time.Now()))

		handler := NewGetSocialFeedHandler(prefRepo, songLogRepo, scorer)

		result, err := handler.Handle(ctx, queries.GetSocialFeedQuery{UserID: "viewer", Page: 1, PageSize: 20})
		require.NoError(t, err)

		feed := result.(*queries.SocialFeedResult)
		assert.Empty(t, feed.FeedItems)
		assert.Zero(t, feed.TotalCount)
	})
}
