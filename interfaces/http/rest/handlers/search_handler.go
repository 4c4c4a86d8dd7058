package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tastebud/application/ports"
	"tastebud/pkg/common"
	apperrors "tastebud/pkg/errors"
)

// SearchHandler handles catalog track search requests
type SearchHandler struct {
	catalog ports.TrackCatalog
	logger  *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(catalog ports.TrackCatalog, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// SearchResult wraps the catalog matches for a query
type SearchResult struct {
	Tracks []*ports.CatalogTrack `json:"tracks"`
	Query  string                `json:"query"`
}

// Search handles GET /api/songs/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		common.RespondAppError(w, apperrors.NewValidationError("search query is required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	tracks, err := h.catalog.Search(r.Context(), query, limit)
	if err != nil {
		h.logger.Warn("catalog search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, SearchResult{
		Tracks: tracks,
		Query:  query,
	})
}
