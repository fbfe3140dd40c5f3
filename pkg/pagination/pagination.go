// Package pagination provides limit/offset windowing for list queries.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/mariner/pkg/query"
)

// PageRequest represents a client request for a window of data with optional search and sorting.
type PageRequest struct {
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Search *string           `json:"search,omitempty"`
	Sort   []query.SortField `json:"sort,omitempty"`
}

// Normalize clamps the request to the configured bounds.
// A non-positive limit takes the default; a limit above the maximum is lowered to it;
// a negative offset becomes zero.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: limit, offset, search, sort. Unparseable numbers fall back to defaults.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	limit, _ := strconv.Atoi(values.Get("limit"))
	offset, _ := strconv.Atoi(values.Get("offset"))

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	req := PageRequest{
		Limit:  limit,
		Offset: offset,
		Search: search,
		Sort:   query.ParseSortFields(values.Get("sort")),
	}

	req.Normalize(cfg)
	return req
}
