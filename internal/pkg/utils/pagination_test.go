package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, perPage         int
		wantPage, wantPerPage int
	}{
		{0, 0, 1, 25},
		{-3, 10, 1, 10},
		{4, 500, 4, 100},
		{2, 50, 2, 50},
	}
	for _, tt := range tests {
		page, perPage := NormalizePage(tt.page, tt.perPage)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantPerPage, perPage)
	}
}

func TestLimitOffset(t *testing.T) {
	limit, offset := LimitOffset(3, 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	limit, offset = LimitOffset(0, 0)
	assert.Equal(t, DefaultPerPage, limit)
	assert.Equal(t, 0, offset)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 25))
	assert.Equal(t, 1, TotalPages(1, 25))
	assert.Equal(t, 1, TotalPages(25, 25))
	assert.Equal(t, 2, TotalPages(26, 25))
	assert.Equal(t, 0, TotalPages(10, 0))
}
