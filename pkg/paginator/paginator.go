package paginator

import "math"

const (
	// DefaultPage is the default page number when invalid page is provided.
	DefaultPage = 1
	// DefaultLimit is the default number of items per page when invalid limit is provided.
	DefaultLimit = 25
	// MaxLimit is the maximum number of items per page to prevent excessive queries.
	MaxLimit = 100
)

// PaginateQuery contains pagination parameters for a request.
type PaginateQuery struct {
	Page  int   `json:"page" form:"page"`
	Limit int64 `json:"limit" form:"limit"`
}

// Adjust normalizes the pagination parameters to valid values.
func (p *PaginateQuery) Adjust() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	} else if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset calculates the database offset for the current page.
func (p *PaginateQuery) Offset() int64 {
	return int64(p.Page-1) * p.Limit
}

// Paginator contains pagination metadata for a query result.
type Paginator struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int   `json:"current_page"`
}

// TotalPages calculates the total number of pages.
func (p Paginator) TotalPages() int {
	if p.Total == 0 || p.PerPage == 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.PerPage)))
}

// HasNextPage checks if there is a next page available.
func (p Paginator) HasNextPage() bool {
	return p.CurrentPage < p.TotalPages()
}
