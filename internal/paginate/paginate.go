// Package paginate slices an already-sorted, already-filtered result set
// into pages. Working on the full in-memory result keeps the reported total
// and the returned slice consistent with each other; ordering stability is
// the query's job (every ORDER BY carries a primary-key tiebreaker).
package paginate

import "github.com/rbeckert/forum/internal/httperr"

type Metadata struct {
	Page           int64 `json:"page"`
	AvailablePages int64 `json:"available_pages"`
}

// Paginate returns the sub-slice for the requested page plus page metadata.
// The limit must already be validated as positive by the caller; a page of
// zero means "not supplied" and defaults to 1. Requesting a page beyond the
// available range fails with a 404 naming both numbers.
func Paginate[T any](items []T, limit, page int64) ([]T, Metadata, error) {
	if page <= 0 {
		page = 1
	}

	total := int64(len(items))
	availablePages := (total + limit - 1) / limit

	if page > 1 && page > availablePages {
		return nil, Metadata{}, httperr.NotFoundf("Not found. Requested page %d but there are only %d pages available.",
			page, availablePages)
	}

	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	metadata := Metadata{
		Page:           page,
		AvailablePages: availablePages,
	}
	return items[start:end], metadata, nil
}
