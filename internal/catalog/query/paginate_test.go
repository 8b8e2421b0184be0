package query

import (
	"testing"

	"github.com/gartstein/catalog/internal/catalog/models"
	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		page     int
		limit    int
		wantData []int
		want     models.Pagination
	}{
		{
			name:     "first page",
			items:    seq(14),
			page:     1,
			limit:    6,
			wantData: []int{1, 2, 3, 4, 5, 6},
			want:     models.Pagination{CurrentPage: 1, TotalPages: 3, TotalItems: 14, ItemsPerPage: 6, HasNextPage: true},
		},
		{
			name:     "middle page",
			items:    seq(14),
			page:     2,
			limit:    6,
			wantData: []int{7, 8, 9, 10, 11, 12},
			want:     models.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 14, ItemsPerPage: 6, HasNextPage: true, HasPrevPage: true},
		},
		{
			name:     "short last page",
			items:    seq(14),
			page:     3,
			limit:    6,
			wantData: []int{13, 14},
			want:     models.Pagination{CurrentPage: 3, TotalPages: 3, TotalItems: 14, ItemsPerPage: 6, HasPrevPage: true},
		},
		{
			name:     "exact last page",
			items:    seq(12),
			page:     2,
			limit:    6,
			wantData: []int{7, 8, 9, 10, 11, 12},
			want:     models.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 12, ItemsPerPage: 6, HasPrevPage: true},
		},
		{
			name:     "past the end",
			items:    seq(3),
			page:     5,
			limit:    6,
			wantData: []int{},
			want:     models.Pagination{CurrentPage: 5, TotalPages: 1, TotalItems: 3, ItemsPerPage: 6, HasPrevPage: true},
		},
		{
			name:     "empty collection",
			items:    nil,
			page:     1,
			limit:    6,
			wantData: []int{},
			want:     models.Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 6},
		},
		{
			name:     "zero page clamps to first",
			items:    seq(8),
			page:     0,
			limit:    6,
			wantData: []int{1, 2, 3, 4, 5, 6},
			want:     models.Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 8, ItemsPerPage: 6, HasNextPage: true},
		},
		{
			name:     "negative page clamps to first",
			items:    seq(8),
			page:     -3,
			limit:    6,
			wantData: []int{1, 2, 3, 4, 5, 6},
			want:     models.Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 8, ItemsPerPage: 6, HasNextPage: true},
		},
		{
			name:     "zero limit clamps to one",
			items:    seq(3),
			page:     2,
			limit:    0,
			wantData: []int{2},
			want:     models.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 3, ItemsPerPage: 1, HasNextPage: true, HasPrevPage: true},
		},
		{
			name:     "huge page does not overflow",
			items:    seq(3),
			page:     int(^uint(0) >> 1),
			limit:    6,
			wantData: []int{},
			want:     models.Pagination{CurrentPage: int(^uint(0) >> 1), TotalPages: 1, TotalItems: 3, ItemsPerPage: 6, HasPrevPage: true},
		},
		{
			name:     "huge limit does not overflow",
			items:    seq(3),
			page:     1,
			limit:    int(^uint(0) >> 1),
			wantData: []int{1, 2, 3},
			want:     models.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 3, ItemsPerPage: int(^uint(0) >> 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.items, tt.page, tt.limit)
			assert.Equal(t, tt.wantData, got.Data)
			assert.Equal(t, tt.want, got.Pagination)
		})
	}
}

func TestPaginate_Properties(t *testing.T) {
	for total := 0; total <= 20; total++ {
		items := seq(total)
		for limit := 1; limit <= 7; limit++ {
			for page := 0; page <= 6; page++ {
				got := Paginate(items, page, limit)
				p := got.Pagination

				assert.LessOrEqual(t, len(got.Data), limit)
				assert.Equal(t, p.TotalItems == 0, p.TotalPages == 0, "total=%d limit=%d", total, limit)
				if !p.HasNextPage && total > 0 && p.CurrentPage <= p.TotalPages {
					assert.Less(t, p.CurrentPage*limit-total, limit, "total=%d limit=%d page=%d", total, limit, page)
				}
			}
		}
	}
}

func TestPaginate_DoesNotMutateInput(t *testing.T) {
	items := seq(5)
	got := Paginate(items, 1, 3)
	got.Data[0] = 100

	assert.Equal(t, seq(5), items)
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"1":    1,
		"4":    4,
		" 2 ":  2,
		"0":    1,
		"-2":   1,
		"abc":  1,
		"2abc": 1,
		"1.5":  1,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParsePage(raw), "ParsePage(%q)", raw)
	}
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ParseLimit("", DefaultLimit))
	assert.Equal(t, 10, ParseLimit("10", DefaultLimit))
	assert.Equal(t, DefaultLimit, ParseLimit("0", DefaultLimit))
	assert.Equal(t, DefaultLimit, ParseLimit("-1", DefaultLimit))
	assert.Equal(t, 3, ParseLimit("nope", 3))
}
