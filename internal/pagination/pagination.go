package pagination

import "strconv"

const (
	// DefaultPage is used when the caller omits or garbles the page parameter.
	DefaultPage = 1
	// DefaultLimit is used when the caller omits or garbles the limit parameter.
	DefaultLimit = 10
	// MaxLimit caps caller-supplied page sizes to keep result dumps bounded.
	MaxLimit = 100
)

// Params carries validated pagination input.
type Params struct {
	Page  int
	Limit int
}

// FromQuery parses raw page/limit query values, applying defaults and the cap.
func FromQuery(page, limit string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if parsed, err := strconv.Atoi(page); err == nil && parsed > 0 {
		p.Page = parsed
	}
	if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
		p.Limit = parsed
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes a result page for response payloads.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewMeta computes page metadata for a total row count.
func NewMeta(total int64, p Params) Meta {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return Meta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}
