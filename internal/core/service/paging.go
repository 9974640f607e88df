package service

import "math"

// normalizePage clamps the 1-based page parameter. Pages past the end of a
// listing come back empty from storage.
func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// pageOffset converts a 1-based page to a row offset. Pages large enough to
// overflow the multiplication are clamped so the offset stays positive and
// the query returns an empty page.
func pageOffset(page, limit int) int {
	page = normalizePage(page)
	if limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
