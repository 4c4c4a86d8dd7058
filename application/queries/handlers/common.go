package handlers

import (
	"sort"

	"tastebud/application/queries"
	"tastebud/domain/core/entities"
)

// sortByRating orders logs best-first: rating desc, ties by earlier
// createdAt, then by ID so the order is fully deterministic
func sortByRating(logs []*entities.SongLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		a, b := logs[i], logs[j]
		if a.EloRating() != b.EloRating() {
			return a.EloRating() > b.EloRating()
		}
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().Before(b.CreatedAt())
		}
		return a.ID().String() < b.ID().String()
	})
}

// newFeedUserView flattens a taste profile into the owner summary embedded
// in feed and discovery payloads
func newFeedUserView(prefs *entities.UserPreferences) queries.FeedUserView {
	artists := prefs.Artists()
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return queries.FeedUserView{
		UserID:   prefs.UserID(),
		Username: prefs.Username(),
		Genres:   prefs.Genres(),
		Artists:  names,
	}
}
