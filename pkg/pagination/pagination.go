// Package pagination holds the page arithmetic shared by list endpoints.
package pagination

import "math"

// TotalPages returns ceil(total/limit). A non-positive limit yields 0.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Offset is the index of the first item on page. It saturates at
// math.MaxInt instead of overflowing, so far pages land past any real list.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Window returns the items of page, the half-open range
// [(page-1)*limit, page*limit) clipped to len(items). Pages past the end are
// empty, never nil.
func Window[T any](items []T, page, limit int) []T {
	start := Offset(page, limit)
	if limit <= 0 || start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Clamp caps page at totalPages, treating an empty set as a single page.
// It returns the effective page and page count.
func Clamp(page, total, limit int) (current, totalPages int) {
	totalPages = TotalPages(total, limit)
	if totalPages == 0 {
		totalPages = 1
	}
	current = page
	if current > totalPages {
		current = totalPages
	}
	return current, totalPages
}
