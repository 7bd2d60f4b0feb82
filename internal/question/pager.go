package question

// Paginate returns the page-th window of size items, clipped to bounds.
// Pages are 1-based; page < 1 is read as the first page. A window starting
// past the end yields an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return []T{}
	}
	if page < 1 {
		page = 1
	}

	pages := (len(items) + size - 1) / size
	if page > pages {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
