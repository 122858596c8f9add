package listing

// Ellipsis marks a compressed run of page numbers in PageNumbers output.
const Ellipsis = -1

// PageNumbers produces the page buttons for pagination controls: at most
// five numeric buttons, centered on current, with the first and last page
// always visible and longer runs compressed to an Ellipsis. Pure display
// math, independent of the data model.
func PageNumbers(current, total int) []int {
	if total < 1 {
		return nil
	}
	if total <= 5 {
		pages := make([]int, 0, total)
		for p := 1; p <= total; p++ {
			pages = append(pages, p)
		}
		return pages
	}

	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	lo := current - 1
	hi := current + 1
	if lo < 2 {
		lo = 2
	}
	if hi > total-1 {
		hi = total - 1
	}
	// keep the middle window three wide when current hugs an edge
	if current <= 2 {
		hi = lo + 2
	}
	if current >= total-1 {
		lo = hi - 2
	}

	pages := []int{1}
	if lo > 2 {
		pages = append(pages, Ellipsis)
	}
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	if hi < total-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, total)
}
