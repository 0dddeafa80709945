package moderation

import "github.com/ezeqja22/sciencepioneers-cli/internal/models"

// PageSize is the fixed report-index page size.
const PageSize = 20

// ListFilter is the state a report index is fetched with. The zero
// value means "all statuses, first page".
type ListFilter struct {
	Status *models.ReportStatus
	Page   int
}

// Normalize returns the filter with the page forced into range. A page
// below 1 becomes 1; anything else is left for the server, which knows
// the real total.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

// WithStatus switches the status filter and resets to the first page,
// so the pagination state can never describe the previous result set.
func (f ListFilter) WithStatus(status *models.ReportStatus) ListFilter {
	return ListFilter{Status: status, Page: 1}
}

// Pager is the pagination state derived from a fetched page. Movement
// is expressed through these methods only; callers never arithmetic on
// the page number themselves.
type Pager struct {
	Page       int
	TotalPages int
}

// NewPager clamps the fetched metadata into a consistent pager.
func NewPager(page, totalPages int) Pager {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pager{Page: page, TotalPages: totalPages}
}

// HasPrev reports whether a previous page exists.
func (p Pager) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pager) HasNext() bool { return p.Page < p.TotalPages }

// Next returns the next page number, staying put at the last page.
func (p Pager) Next() int {
	if p.HasNext() {
		return p.Page + 1
	}
	return p.Page
}

// Prev returns the previous page number, staying put at the first page.
func (p Pager) Prev() int {
	if p.HasPrev() {
		return p.Page - 1
	}
	return p.Page
}
