package aggregate

// Page slices out one page of an already-filtered list. The page number is
// 1-based and clamped to the valid range; start and end are the 1-based
// display indices ("showing start–end of n"). An empty list yields 0, 0.
func Page[T any](items []T, pageSize, page int) ([]T, int, int) {
	if len(items) == 0 || pageSize < 1 {
		return []T{}, 0, 0
	}
	pages := (len(items) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return append([]T{}, items[start:end]...), start + 1, end
}
