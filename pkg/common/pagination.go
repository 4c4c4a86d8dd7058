package common

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is used when the client does not request a size.
	DefaultPageSize = 20
	// MaxPageSize bounds a single page of feed items.
	MaxPageSize = 100
)

// PaginationParams represents offset pagination parameters
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// ExtractPaginationParams extracts pagination parameters from request
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if pageSize := r.URL.Query().Get("page_size"); pageSize != "" {
		if ps, err := strconv.Atoi(pageSize); err == nil && ps > 0 {
			if ps > MaxPageSize {
				ps = MaxPageSize
			}
			params.PageSize = ps
		}
	}

	return params
}

// NormalizePagination clamps raw pagination values into valid parameters:
// zero or negative values fall back to defaults, sizes cap at MaxPageSize
func NormalizePagination(page, pageSize int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: pageSize}
}

// Offset calculates the slice offset for the page
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginationInfo contains pagination details
type PaginationInfo struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalCount  int  `json:"total_count"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// BuildPaginationMeta builds pagination metadata for a total item count.
// Out-of-range pages report HasNext=false rather than an error.
func BuildPaginationMeta(page, pageSize, total int) PaginationInfo {
	return PaginationInfo{
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  total,
		HasNext:     page*pageSize < total,
		HasPrevious: page > 1 && total > 0,
	}
}

// PageBounds returns the [start, end) slice bounds for the page, clamped to
// the total count. An out-of-range page yields start == end.
func PageBounds(page, pageSize, total int) (int, int) {
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
