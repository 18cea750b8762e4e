package catalog

// Page is one page of a processed (searched, filtered, sorted) list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns ceil(n/size).  A non-positive size is treated as one
// item per page.
func TotalPages(n, size int) int {
	if size < 1 {
		size = 1
	}
	return (n + size - 1) / size
}

// Paginate slices items to the 1-indexed page of the given size, i.e. the
// half-open interval [(page-1)*size, page*size).  Pages past the end are
// empty, never an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	if page < 1 {
		page = 1
	}
	n := len(items)
	lo := (page - 1) * size
	if lo > n {
		lo = n
	}
	hi := lo + size
	if hi > n {
		hi = n
	}
	return Page[T]{
		Items:      items[lo:hi],
		Number:     page,
		PageSize:   size,
		TotalItems: n,
		TotalPages: TotalPages(n, size),
	}
}
