package domain

// Pagination defaults and ceiling for list endpoints such as trip listing.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PaginationParams is the validated page window a list query runs with.
// Construct it through NewPaginationParams so the defaults and the limit
// ceiling are always applied.
type PaginationParams struct {
	// Page is 1-indexed.
	Page int
	// Limit is the page size, never above MaxLimit.
	Limit int
}

// NewPaginationParams normalizes raw ?page= and ?limit= query values.
// A nil or non-positive value takes the default; a limit above MaxLimit
// is clamped so a single request cannot drag the whole table.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: DefaultPage, Limit: DefaultLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxLimit)
	}
	return p
}

// Offset converts the page window into a zero-based SQL OFFSET.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
