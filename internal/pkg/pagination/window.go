package pagination

// MaxButtons is the number of page buttons rendered around the current page.
const MaxButtons = 5

// TotalPages returns ceil(total/limit), at least 1 when there are items.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Window returns up to size page numbers centred on current and clamped to [1, totalPages].
func Window(current, totalPages, size int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	if size <= 0 {
		size = MaxButtons
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > totalPages {
		end = totalPages
		start = end - size + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
