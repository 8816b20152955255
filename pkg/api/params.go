package api

import (
	"net/url"
	"strconv"
)

// DefaultPageSize is substituted when the caller omits paging parameters.
const DefaultPageSize = 10

// PageParams carries zero-based paging parameters for list endpoints.
type PageParams struct {
	Page int
	Size int
}

// pageValues renders paging parameters as a query, defaulting to {0, 10}.
func pageValues(p *PageParams) url.Values {
	page, size := 0, DefaultPageSize
	if p != nil {
		page = p.Page
		if p.Size > 0 {
			size = p.Size
		}
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("size", strconv.Itoa(size))
	return values
}
