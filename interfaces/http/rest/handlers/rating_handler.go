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

// RatingHandler handles comparison and ranking HTTP requests
type RatingHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *RatingHandler {
	return &RatingHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateComparisonRequest represents the request body for recording a comparison
type CreateComparisonRequest struct {
	SongLogID         string `json:"song_log_id" validate:"required"`
	ComparedSongLogID string `json:"compared_song_log_id" validate:"required"`
	WinnerSongLogID   string `json:"winner_song_log_id" validate:"required"`
}

// GetComparisonPair handles GET /api/ratings/comparison_pair
func (h *RatingHandler) GetComparisonPair(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetComparisonPairQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		h.logger.Debug("comparison pair unavailable",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// CreateComparison handles POST /api/ratings/create_comparison
func (h *RatingHandler) CreateComparison(w http.ResponseWriter, r *http.Request) {
	var req CreateComparisonRequest
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

	cmd := commands.RecordComparisonCommand{
		UserID:            userCtx.UserID,
		SongLogID:         req.SongLogID,
		ComparedSongLogID: req.ComparedSongLogID,
		WinnerSongLogID:   req.WinnerSongLogID,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("failed to record comparison",
			zap.String("userID", userCtx.UserID),
			zap.String("winner", req.WinnerSongLogID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// GetRankings handles GET /api/ratings/rankings
func (h *RatingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetRankingsQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetStats handles GET /api/ratings/stats
func (h *RatingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetStatsQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
