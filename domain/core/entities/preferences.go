package entities

import (
	"strings"
	"time"

	"tastebud/domain/core/valueobjects"
	"tastebud/domain/events"
	pkgerrors "tastebud/pkg/errors"
)

// UserPreferences is a user's taste profile: the genre, artist, and mood
// sets the similarity engine compares. Mutable in place by the owner only.
type UserPreferences struct {
	userID    string
	username  string
	genres    []string
	artists   []valueobjects.ArtistRef
	moods     []string
	updatedAt time.Time
	version   int

	events []events.DomainEvent
}

// NewUserPreferences creates an empty taste profile for a user
func NewUserPreferences(userID, username string) (*UserPreferences, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	return &UserPreferences{
		userID:    userID,
		username:  username,
		updatedAt: time.Now(),
		version:   1,
		events:    []events.DomainEvent{},
	}, nil
}

// ReconstructUserPreferences reconstructs a taste profile from repository data
func ReconstructUserPreferences(
	userID, username string,
	genres []string,
	artists []valueobjects.ArtistRef,
	moods []string,
	updatedAt time.Time,
	version int,
) (*UserPreferences, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	return &UserPreferences{
		userID:    userID,
		username:  username,
		genres:    genres,
		artists:   artists,
		moods:     moods,
		updatedAt: updatedAt,
		version:   version,
		events:    []events.DomainEvent{},
	}, nil
}

// UserID returns the owner's ID
func (p *UserPreferences) UserID() string {
	return p.userID
}

// Username returns the owner's display name
func (p *UserPreferences) Username() string {
	return p.username
}

// Genres returns the genre tags
func (p *UserPreferences) Genres() []string {
	genres := make([]string, len(p.genres))
	copy(genres, p.genres)
	return genres
}

// Artists returns the artist references
func (p *UserPreferences) Artists() []valueobjects.ArtistRef {
	artists := make([]valueobjects.ArtistRef, len(p.artists))
	copy(artists, p.artists)
	return artists
}

// Moods returns the mood tags
func (p *UserPreferences) Moods() []string {
	moods := make([]string, len(p.moods))
	copy(moods, p.moods)
	return moods
}

// UpdatedAt returns when the profile was last changed
func (p *UserPreferences) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version returns the profile's version for optimistic locking
func (p *UserPreferences) Version() int {
	return p.version
}

// IsEmpty reports whether all three preference sets are empty. An empty
// profile blocks song logging until the user fills something in.
func (p *UserPreferences) IsEmpty() bool {
	return len(p.genres) == 0 && len(p.artists) == 0 && len(p.moods) == 0
}

// Update overwrites the profile in place, trimming and deduplicating tags
func (p *UserPreferences) Update(genres []string, artists []valueobjects.ArtistRef, moods []string) error {
	cleanGenres := dedupeTags(genres)
	cleanMoods := dedupeTags(moods)

	seen := make(map[string]bool)
	cleanArtists := make([]valueobjects.ArtistRef, 0, len(artists))
	for _, a := range artists {
		if strings.TrimSpace(a.Name) == "" {
			return pkgerrors.NewValidationError("artist name cannot be empty")
		}
		if key := a.Key(); !seen[key] {
			seen[key] = true
			cleanArtists = append(cleanArtists, a)
		}
	}

	p.genres = cleanGenres
	p.artists = cleanArtists
	p.moods = cleanMoods
	p.updatedAt = time.Now()
	p.version++

	p.addEvent(events.NewPreferencesUpdated(p.userID, len(cleanGenres), len(cleanArtists), len(cleanMoods), p.updatedAt))

	return nil
}

// SetUsername refreshes the cached display name from the identity claims
func (p *UserPreferences) SetUsername(username string) {
	if username != "" && username != p.username {
		p.username = username
		p.updatedAt = time.Now()
	}
}

// GetUncommittedEvents returns all uncommitted domain events
func (p *UserPreferences) GetUncommittedEvents() []events.DomainEvent {
	return p.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (p *UserPreferences) MarkEventsAsCommitted() {
	p.events = []events.DomainEvent{}
}

func (p *UserPreferences) addEvent(event events.DomainEvent) {
	p.events = append(p.events, event)
}

// dedupeTags trims whitespace and drops empty or duplicate tags, comparing
// case-insensitively while preserving the first-seen casing
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool)
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if !seen[key] {
			seen[key] = true
			clean = append(clean, tag)
		}
	}
	return clean
}
