package catalog

import "time"

// ServiceQuery accumulates the search/filter/sort/pagination parameters of a
// service listing.  Every setter that changes what the list contains resets
// the current page to 1, so a customer who refines a filter never lands on
// a page that no longer exists.  The zero value is unusable; construct with
// NewServiceQuery.
type ServiceQuery struct {
	search   string
	filter   ServiceFilter
	sortKey  ServiceSortKey
	sortDesc bool
	page     int
	pageSize int
}

// NewServiceQuery returns a query with the given page size, no search text,
// no filters, name-ascending order and the page set to 1.
func NewServiceQuery(pageSize int) *ServiceQuery {
	if pageSize < 1 {
		pageSize = 1
	}
	return &ServiceQuery{sortKey: ServiceSortName, page: 1, pageSize: pageSize}
}

// SetSearch replaces the free-text query and resets the page.
func (q *ServiceQuery) SetSearch(s string) { q.search = s; q.page = 1 }

// SetFilter replaces the filter criteria and resets the page.
func (q *ServiceQuery) SetFilter(f ServiceFilter) { q.filter = f; q.page = 1 }

// SetSort replaces the sort key/direction and resets the page.
func (q *ServiceQuery) SetSort(key ServiceSortKey, desc bool) {
	q.sortKey = key
	q.sortDesc = desc
	q.page = 1
}

// SetPageSize changes the page size and resets the page.
func (q *ServiceQuery) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	q.pageSize = size
	q.page = 1
}

// SetPage moves to the given 1-indexed page.
func (q *ServiceQuery) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	q.page = page
}

// Page returns the current 1-indexed page number.
func (q *ServiceQuery) Page() int { return q.page }

// Apply runs the full search → filter → sort → paginate pipeline over items.
func (q *ServiceQuery) Apply(items []Service, now time.Time) Page[Service] {
	processed := SearchServices(q.search, items)
	processed = FilterServices(processed, q.filter, now)
	processed = SortServices(processed, q.sortKey, q.sortDesc, now)
	return Paginate(processed, q.page, q.pageSize)
}

// StylistQuery is the stylist counterpart of ServiceQuery.
type StylistQuery struct {
	search   string
	filter   StylistFilter
	sortKey  StylistSortKey
	sortDesc bool
	page     int
	pageSize int
}

// NewStylistQuery returns a query with the given page size and defaults
// mirroring NewServiceQuery.
func NewStylistQuery(pageSize int) *StylistQuery {
	if pageSize < 1 {
		pageSize = 1
	}
	return &StylistQuery{sortKey: StylistSortName, page: 1, pageSize: pageSize}
}

// SetSearch replaces the free-text query and resets the page.
func (q *StylistQuery) SetSearch(s string) { q.search = s; q.page = 1 }

// SetFilter replaces the filter criteria and resets the page.
func (q *StylistQuery) SetFilter(f StylistFilter) { q.filter = f; q.page = 1 }

// SetSort replaces the sort key/direction and resets the page.
func (q *StylistQuery) SetSort(key StylistSortKey, desc bool) {
	q.sortKey = key
	q.sortDesc = desc
	q.page = 1
}

// SetPageSize changes the page size and resets the page.
func (q *StylistQuery) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	q.pageSize = size
	q.page = 1
}

// SetPage moves to the given 1-indexed page.
func (q *StylistQuery) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	q.page = page
}

// Page returns the current 1-indexed page number.
func (q *StylistQuery) Page() int { return q.page }

// Apply runs the full search → filter → sort → paginate pipeline over items.
func (q *StylistQuery) Apply(items []Stylist) Page[Stylist] {
	processed := SearchStylists(q.search, items)
	processed = FilterStylists(processed, q.filter)
	processed = SortStylists(processed, q.sortKey, q.sortDesc)
	return Paginate(processed, q.page, q.pageSize)
}
