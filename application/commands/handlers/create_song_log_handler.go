package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tastebud/application/commands"
	"tastebud/application/commands/bus"
	"tastebud/application/ports"
	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
	apperrors "tastebud/pkg/errors"
)

// CreateSongLogHandler handles song log creation. The eligibility gate runs
// inside the write path and the store's conditional put is the final guard
// against a same-day race.
type CreateSongLogHandler struct {
	songLogRepo ports.SongLogRepository
	prefRepo    ports.PreferenceRepository
	catalog     ports.TrackCatalog
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewCreateSongLogHandler creates a new handler instance
func NewCreateSongLogHandler(
	songLogRepo ports.SongLogRepository,
	prefRepo ports.PreferenceRepository,
	catalog ports.TrackCatalog,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateSongLogHandler {
	return &CreateSongLogHandler{
		songLogRepo: songLogRepo,
		prefRepo:    prefRepo,
		catalog:     catalog,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle implements bus.CommandHandler
func (h *CreateSongLogHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	createCmd, ok := cmd.(commands.CreateSongLogCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.handle(ctx, createCmd)
}

func (h *CreateSongLogHandler) handle(ctx context.Context, cmd commands.CreateSongLogCommand) (*entities.SongLog, error) {
	date := cmd.LogDate()

	// Eligibility gate: a filled-in taste profile and no entry for the day
	prefs, err := h.prefRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs == nil || prefs.IsEmpty() {
		return nil, apperrors.NewLoggingNotAllowedError("set up your music preferences before logging songs")
	}

	existing, err := h.songLogRepo.GetByOwnerAndDate(ctx, cmd.UserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing log: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewLoggingNotAllowedError("you have already logged a song for this day")
	}

	// Resolve track metadata before touching the store so a catalog failure
	// leaves nothing behind
	track, err := h.resolveTrack(ctx, cmd)
	if err != nil {
		return nil, err
	}

	log, err := entities.NewSongLog(cmd.UserID, date, track, cmd.Note)
	if err != nil {
		return nil, err
	}

	if err := h.songLogRepo.Create(ctx, log); err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.NewLoggingNotAllowedError("you have already logged a song for this day")
		}
		return nil, fmt.Errorf("failed to create song log: %w", err)
	}

	if err := h.publisher.PublishBatch(ctx, log.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish song log events",
			zap.String("logID", log.ID().String()),
			zap.Error(err),
		)
	}
	log.MarkEventsAsCommitted()

	return log, nil
}

// resolveTrack builds the track reference from the catalog or manual fields
func (h *CreateSongLogHandler) resolveTrack(ctx context.Context, cmd commands.CreateSongLogCommand) (valueobjects.TrackRef, error) {
	if cmd.SpotifyID != "" {
		catalogTrack, err := h.catalog.Lookup(ctx, cmd.SpotifyID)
		if err != nil {
			return valueobjects.TrackRef{}, apperrors.NewExternalError("track lookup failed", err)
		}
		track, err := valueobjects.NewTrackRef(catalogTrack.Title, catalogTrack.Artist)
		if err != nil {
			return valueobjects.TrackRef{}, err
		}
		return track.
			WithAlbum(catalogTrack.Album, catalogTrack.AlbumArtURL).
			WithCatalogData(catalogTrack.SpotifyID, catalogTrack.PreviewURL, catalogTrack.DurationMs, catalogTrack.Popularity), nil
	}

	track, err := valueobjects.NewTrackRef(cmd.Title, cmd.Artist)
	if err != nil {
		return valueobjects.TrackRef{}, err
	}
	if cmd.Album != "" {
		track = track.WithAlbum(cmd.Album, "")
	}
	return track, nil
}
