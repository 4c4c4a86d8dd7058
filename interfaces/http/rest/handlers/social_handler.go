package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"tastebud/application/queries"
	querybus "tastebud/application/queries/bus"
	"tastebud/pkg/auth"
	"tastebud/pkg/common"
)

// SocialHandler handles taste-similarity HTTP requests
type SocialHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *SocialHandler {
	return &SocialHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// SocialFeed handles GET /api/song-logs/social_feed
func (h *SocialHandler) SocialFeed(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	params := common.ExtractPaginationParams(r)

	result, err := h.queryBus.Ask(r.Context(), queries.GetSocialFeedQuery{
		UserID:   userCtx.UserID,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// UserDiscovery handles GET /api/song-logs/user_discovery
func (h *SocialHandler) UserDiscovery(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetUserDiscoveryQuery{
		UserID: userCtx.UserID,
		Limit:  limitParam(r),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// SimilarUsers handles GET /api/song-logs/similar_users
func (h *SocialHandler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetSimilarUsersQuery{
		UserID: userCtx.UserID,
		Limit:  limitParam(r),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// limitParam reads an optional positive limit query parameter
func limitParam(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			return limit
		}
	}
	return 0
}
