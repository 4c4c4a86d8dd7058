package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"tastebud/application/commands"
	"tastebud/application/commands/bus"
	"tastebud/domain/core/valueobjects"
	"tastebud/pkg/auth"
	"tastebud/pkg/common"
	apperrors "tastebud/pkg/errors"
	"tastebud/pkg/utils"
)

// ProfileHandler handles taste profile HTTP requests
type ProfileHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(commandBus *bus.CommandBus, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// UpdatePreferencesRequest represents the request body for replacing the
// taste profile. Artist entries accept both the legacy bare-string form and
// the object form; ArtistRef handles the decoding.
type UpdatePreferencesRequest struct {
	Genres  []string                 `json:"genres" validate:"max=50,dive,min=1,max=60"`
	Artists []valueobjects.ArtistRef `json:"artists" validate:"max=50"`
	Moods   []string                 `json:"moods" validate:"max=50,dive,min=1,max=60"`
}

// UpdatePreferences handles PUT /api/profile/preferences
func (h *ProfileHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	cmd := commands.UpdatePreferencesCommand{
		UserID:   userCtx.UserID,
		Username: userCtx.Username,
		Genres:   req.Genres,
		Artists:  req.Artists,
		Moods:    req.Moods,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("failed to update preferences",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
