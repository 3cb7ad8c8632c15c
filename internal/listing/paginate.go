package listing

// PageSize is the number of listings per page
const PageSize = 12

// Page is one slice of a filtered result
type Page[T any] struct {
	Items      []T
	Number     int // 1-based
	TotalPages int
	TotalItems int

	// Reset is set when the requested page no longer existed and the
	// view fell back to page 1
	Reset bool
}

// TotalPages returns ceil(n / PageSize)
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the requested page of items. A page past the end (after a
// filter shrank the result) resets to page 1 instead of showing nothing.
func Paginate[T any](items []T, page int) Page[T] {
	total := TotalPages(len(items))
	p := Page[T]{
		Number:     page,
		TotalPages: total,
		TotalItems: len(items),
	}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > max(total, 1) {
		p.Number = 1
		// an empty result has no page to fall back from
		p.Reset = total > 0
	}

	start := (p.Number - 1) * PageSize
	if start >= len(items) {
		p.Items = []T{}
		return p
	}
	end := min(start+PageSize, len(items))
	p.Items = items[start:end]
	return p
}

// Ellipsis marks a gap in the pager window returned by PageNumbers
const Ellipsis = 0

// PageNumbers returns the page links to show around current: always the
// first and last page, one neighbour either side, and Ellipsis for gaps.
func PageNumbers(current, total int) []int {
	const maxPagesToShow = 5

	if total <= maxPagesToShow+2 {
		nums := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			nums = append(nums, i)
		}
		return nums
	}

	nums := []int{1}
	if current > 3 {
		nums = append(nums, Ellipsis)
	}
	for i := max(2, current-1); i <= min(total-1, current+1); i++ {
		nums = append(nums, i)
	}
	if current < total-2 {
		nums = append(nums, Ellipsis)
	}
	return append(nums, total)
}
