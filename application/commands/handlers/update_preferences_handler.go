package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tastebud/application/commands"
	"tastebud/application/commands/bus"
	"tastebud/application/ports"
	"tastebud/domain/core/entities"
)

// UpdatePreferencesHandler overwrites a user's taste profile
type UpdatePreferencesHandler struct {
	prefRepo  ports.PreferenceRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdatePreferencesHandler creates a new handler instance
func NewUpdatePreferencesHandler(
	prefRepo ports.PreferenceRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdatePreferencesHandler {
	return &UpdatePreferencesHandler{
		prefRepo:  prefRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle implements bus.CommandHandler
func (h *UpdatePreferencesHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	updateCmd, ok := cmd.(commands.UpdatePreferencesCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.handle(ctx, updateCmd)
}

func (h *UpdatePreferencesHandler) handle(ctx context.Context, cmd commands.UpdatePreferencesCommand) (*entities.UserPreferences, error) {
	prefs, err := h.prefRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs == nil {
		prefs, err = entities.NewUserPreferences(cmd.UserID, cmd.Username)
		if err != nil {
			return nil, err
		}
	}

	prefs.SetUsername(cmd.Username)
	if err := prefs.Update(cmd.Genres, cmd.Artists, cmd.Moods); err != nil {
		return nil, err
	}

	if err := h.prefRepo.Save(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	if err := h.publisher.PublishBatch(ctx, prefs.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish preference events",
			zap.String("userID", cmd.UserID),
			zap.Error(err),
		)
	}
	prefs.MarkEventsAsCommitted()

	return prefs, nil
}
