package ledger

// MaxPageSize is the largest page a caller may request.
const MaxPageSize = 100

// PageWindow computes the [offset, offset+limit) window for an offset-based
// page over a sequence of total elements.
//
// Rules:
//   - total == 0 returns an empty window (0, 0): an empty ledger is a valid
//     empty page, never an error.
//   - offset >= total (with total > 0) fails with a PageOutOfRangeError
//     carrying the total, so callers can re-page.
//   - Otherwise limit is size, clamped to the elements remaining.
//
// page and size are assumed already validated (page >= 0, 1 <= size <= 100).
func PageWindow(total, page, size int) (offset, limit int, err error) {
	if total == 0 {
		return 0, 0, nil
	}

	offset = page * size
	if offset >= total {
		return 0, 0, &PageOutOfRangeError{Page: page, Size: size, Total: total}
	}

	limit = size
	if remaining := total - offset; remaining < limit {
		limit = remaining
	}
	return offset, limit, nil
}
