package httputil

import (
	"errors"
	"net/http"
	"strconv"
)

// Pagination defaults and caps for skip/limit style list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// Page holds validated pagination parameters. Page numbers are 1-based.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of rows to skip: (page-1)*limit.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// ParsePage reads and validates page/limit query parameters. Missing
// parameters fall back to page=1, limit=10. Non-numeric or non-positive
// values are rejected rather than coerced; limit is capped at MaxLimit.
func ParsePage(r *http.Request) (Page, error) {
	p := Page{Number: DefaultPage, Limit: DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidPage
		}
		p.Number = n
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidLimit
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		p.Limit = n
	}

	return p, nil
}
