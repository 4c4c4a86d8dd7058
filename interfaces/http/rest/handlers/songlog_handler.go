package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"tastebud/application/commands"
	"tastebud/application/commands/bus"
	"tastebud/application/queries"
	querybus "tastebud/application/queries/bus"
	"tastebud/pkg/auth"
	"tastebud/pkg/common"
	apperrors "tastebud/pkg/errors"
	"tastebud/pkg/utils"
)

// SongLogHandler handles song log HTTP requests
type SongLogHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewSongLogHandler creates a new song log handler
func NewSongLogHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *SongLogHandler {
	return &SongLogHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateSongLogRequest represents the request body for logging a song.
// The track comes either from the catalog by ID or from manual fields.
type CreateSongLogRequest struct {
	SpotifyID string `json:"spotify_id,omitempty"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=300"`
	Artist    string `json:"artist,omitempty" validate:"omitempty,max=300"`
	Album     string `json:"album,omitempty" validate:"omitempty,max=300"`
	Note      string `json:"note,omitempty" validate:"omitempty,max=2000"`
	Date      string `json:"date,omitempty"`
}

// CreateSongLog handles POST /api/song-logs
func (h *SongLogHandler) CreateSongLog(w http.ResponseWriter, r *http.Request) {
	var req CreateSongLogRequest
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

	cmd := commands.CreateSongLogCommand{
		UserID:    userCtx.UserID,
		Username:  userCtx.Username,
		SpotifyID: req.SpotifyID,
		Title:     req.Title,
		Artist:    req.Artist,
		Album:     req.Album,
		Note:      req.Note,
		Date:      req.Date,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("failed to create song log",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// ListSongLogs handles GET /api/song-logs
func (h *SongLogHandler) ListSongLogs(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListSongLogsQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// CanLogToday handles GET /api/song-logs/can_log_today
func (h *SongLogHandler) CanLogToday(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.CanLogTodayQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// HomeStatus handles GET /api/song-logs/home_status
func (h *SongLogHandler) HomeStatus(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetHomeStatusQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
