package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize applies when the client sends no usable page size.
	DefaultPageSize = 10
	// MaxPageSize is the ceiling applied to every requested page size.
	MaxPageSize = 100

	// QueryKeyPage is the single query key reserved for pagination state.
	QueryKeyPage     = "page"
	QueryKeyPageSize = "pageSize"
	queryKeyPageSize = "page_size"
)

// Policy holds the page size bounds for one listing surface.
type Policy struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPolicy returns the package-level bounds.
func DefaultPolicy() Policy {
	return Policy{DefaultPageSize: DefaultPageSize, MaxPageSize: MaxPageSize}
}

func (p Policy) withDefaults() Policy {
	if p.MaxPageSize <= 0 {
		p.MaxPageSize = MaxPageSize
	}
	if p.DefaultPageSize <= 0 {
		p.DefaultPageSize = DefaultPageSize
	}
	if p.DefaultPageSize > p.MaxPageSize {
		p.DefaultPageSize = p.MaxPageSize
	}
	return p
}

// Request is a normalized page request: Page >= 1 and
// 1 <= PageSize <= the policy ceiling.
type Request struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Offset is the number of source rows skipped before this page. It
// saturates instead of overflowing for absurd page numbers.
func (r Request) Offset() int {
	r = r.sane()
	off, ok := r.offset()
	if !ok {
		return int(^uint(0) >> 1)
	}
	return off
}

// Limit is the window length requested from the source.
func (r Request) Limit() int { return r.sane().PageSize }

// sane keeps a hand-built Request from dividing by zero. The page size
// ceiling belongs to Policy.Normalize.
func (r Request) sane() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 1
	}
	return r
}

// Normalize clamps page to >= 1 and pageSize into [1, MaxPageSize]. The
// clamped size is the one used for both the page count and the slice.
func (p Policy) Normalize(page, pageSize int) Request {
	p = p.withDefaults()
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > p.MaxPageSize {
		pageSize = p.MaxPageSize
	}
	return Request{Page: page, PageSize: pageSize}
}

// ParseRequest reads page and pageSize from query values. A missing or
// unparsable page means 1; a missing or unparsable size means the policy
// default. Parsed values then go through Normalize.
func ParseRequest(values url.Values, policy Policy) Request {
	policy = policy.withDefaults()
	page, ok := parseInt(values.Get(QueryKeyPage))
	if !ok {
		page = 1
	}
	rawSize := values.Get(QueryKeyPageSize)
	if rawSize == "" {
		rawSize = values.Get(queryKeyPageSize)
	}
	size, ok := parseInt(rawSize)
	if !ok {
		size = policy.DefaultPageSize
	}
	return policy.Normalize(page, size)
}

func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
