package paging

import (
	"encoding/json"
)

// Pagination tracks the current page and the page count of a result set.
//
// The page is always kept within [1, TotalPages], so it can be built directly
// from untrusted input:
//
//	p := paging.NewPagination().
//	    WithItemsPerPage(20).
//	    WithTotalItems(50).
//	    WithPage(5)
//	p.Page()       // 3
//	p.TotalPages() // 3
//
// A zero ItemsPerPage means everything is on one page.
type Pagination struct {
	page         int
	totalPages   int
	itemsPerPage int
	totalItems   int
}

// NewPagination returns a pagination on page 1 of 1.
func NewPagination() Pagination {
	return Pagination{
		page:       1,
		totalPages: 1,
	}
}

// WithItemsPerPage returns a copy of p with a new page size. Negative values are
// treated as 0.
func (p Pagination) WithItemsPerPage(n int) Pagination {
	p.itemsPerPage = max(n, 0)
	return p.recalculate()
}

// WithTotalItems returns a copy of p with a new item count. Negative values are
// treated as 0.
func (p Pagination) WithTotalItems(n int) Pagination {
	p.totalItems = max(n, 0)
	return p.recalculate()
}

// WithPage returns a copy of p on the given page, clamped into [1, TotalPages].
func (p Pagination) WithPage(page int) Pagination {
	p.page = page
	return p.recalculate()
}

func (p Pagination) recalculate() Pagination {
	switch {
	case p.itemsPerPage == 0:
		p.totalPages = 1
	case p.itemsPerPage == 1:
		p.totalPages = p.totalItems
	default:
		p.totalPages = (p.totalItems + p.itemsPerPage - 1) / p.itemsPerPage
	}
	p.totalPages = max(p.totalPages, 1)
	p.page = min(max(p.page, 1), p.totalPages)
	return p
}

// Page returns the current 1-based page.
func (p Pagination) Page() int {
	return max(p.page, 1)
}

// TotalPages returns the number of pages, at least 1.
func (p Pagination) TotalPages() int {
	return max(p.totalPages, 1)
}

// ItemsPerPage returns the page size; 0 means unlimited.
func (p Pagination) ItemsPerPage() int {
	return p.itemsPerPage
}

// TotalItems returns the number of items over all pages.
func (p Pagination) TotalItems() int {
	return p.totalItems
}

// Options returns the request options selecting the current page.
func (p Pagination) Options() PaginationOptions {
	return PaginationOptions{Page: p.Page(), ItemsPerPage: p.itemsPerPage}
}

// Offset returns the number of rows before the current page.
func (p Pagination) Offset() int64 {
	return p.Options().Offset()
}

// HasNextPage reports whether a page follows the current one.
func (p Pagination) HasNextPage() bool {
	return p.Page() < p.TotalPages()
}

// HasPreviousPage reports whether a page precedes the current one.
func (p Pagination) HasPreviousPage() bool {
	return p.Page() > 1
}

type paginationJSON struct {
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
}

// MarshalJSON encodes the page, page count, page size and item count.
func (p Pagination) MarshalJSON() ([]byte, error) {
	return json.Marshal(paginationJSON{
		Page:         p.Page(),
		TotalPages:   p.TotalPages(),
		ItemsPerPage: p.itemsPerPage,
		TotalItems:   p.totalItems,
	})
}

// UnmarshalJSON decodes the output of MarshalJSON. The page count is derived
// from the other values rather than trusted.
func (p *Pagination) UnmarshalJSON(data []byte) error {
	var v paginationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*p = NewPagination().
		WithItemsPerPage(v.ItemsPerPage).
		WithTotalItems(v.TotalItems).
		WithPage(v.Page)

	return nil
}
