package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPaginationParams(t *testing.T) {
	t.Run("defaults when absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/feed", nil)

		params := ExtractPaginationParams(r)

		assert.Equal(t, 1, params.Page)
		assert.Equal(t, DefaultPageSize, params.PageSize)
	})

	t.Run("reads query values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/feed?page=3&page_size=50", nil)

		params := ExtractPaginationParams(r)

		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 50, params.PageSize)
	})

	t.Run("ignores invalid values and caps the size", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/feed?page=-2&page_size=9999", nil)

		params := ExtractPaginationParams(r)

		assert.Equal(t, 1, params.Page)
		assert.Equal(t, MaxPageSize, params.PageSize)
	})
}

func TestNormalizePagination(t *testing.T) {
	params := NormalizePagination(0, 0)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)

	params = NormalizePagination(-5, 1000)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, MaxPageSize, params.PageSize)

	params = NormalizePagination(4, 25)
	assert.Equal(t, 4, params.Page)
	assert.Equal(t, 25, params.PageSize)
}

func TestPageBounds(t *testing.T) {
	cases := []struct {
		page, pageSize, total int
		start, end            int
	}{
		{1, 10, 25, 0, 10},
		{2, 10, 25, 10, 20},
		{3, 10, 25, 20, 25},
		{4, 10, 25, 25, 25}, // out of range collapses to empty
		{1, 10, 0, 0, 0},
	}

	for _, c := range cases {
		start, end := PageBounds(c.page, c.pageSize, c.total)
		assert.Equal(t, c.start, start, "page %d", c.page)
		assert.Equal(t, c.end, end, "page %d", c.page)
	}
}

func TestBuildPaginationMeta(t *testing.T) {
	meta := BuildPaginationMeta(1, 10, 25)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)

	meta = BuildPaginationMeta(3, 10, 25)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	meta = BuildPaginationMeta(1, 10, 0)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)
}
