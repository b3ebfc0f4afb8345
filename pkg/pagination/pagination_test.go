package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name      string
		params    PaginationParams
		wantItems []int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{
			name:      "first page with defaults",
			params:    PaginationParams{},
			wantItems: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantPages: 3,
			wantNext:  true,
		},
		{
			name:      "last partial page",
			params:    PaginationParams{Page: 3, PerPage: 10},
			wantItems: []int{21, 22, 23},
			wantPages: 3,
			wantPrev:  true,
		},
		{
			name:      "page past the end",
			params:    PaginationParams{Page: 9, PerPage: 10},
			wantItems: []int{},
			wantPages: 3,
			wantPrev:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			got := Paginate(items, &params)
			assert.Equal(t, tt.wantItems, got.Items)
			assert.Equal(t, int64(23), got.Pagination.Total)
			assert.Equal(t, tt.wantPages, got.Pagination.TotalPages)
			assert.Equal(t, tt.wantNext, got.Pagination.HasNext)
			assert.Equal(t, tt.wantPrev, got.Pagination.HasPrev)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate([]string{}, DefaultPagination())
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Pagination.TotalPages)
	assert.False(t, got.Pagination.HasNext)
}
