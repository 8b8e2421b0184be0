package query

import (
	"strconv"
	"strings"

	"github.com/gartstein/catalog/internal/catalog/models"
)

// DefaultLimit is the page size used when a request does not override it.
const DefaultLimit = 6

// Paginate slices items into the requested page. Pages below 1 are read as
// the first page and limits below 1 as 1. A page past the end is empty, not an error.
func Paginate[T any](items []T, page, limit int) models.Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(items)
	start := total
	if page-1 <= total/limit {
		start = (page - 1) * limit
	}
	end := total
	if limit < total-start {
		end = start + limit
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return models.Page[T]{
		Data: data,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
			HasNextPage:  end < total,
			HasPrevPage:  page > 1,
		},
	}
}

// ParsePage reads a page query value; anything that is not a positive integer is page 1.
func ParsePage(raw string) int {
	return parsePositive(raw, 1)
}

// ParseLimit reads a limit query value, falling back to def.
func ParseLimit(raw string, def int) int {
	return parsePositive(raw, def)
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
