// Package pagination slices ordered collections into pages and derives the
// metadata a client needs to render page controls.
//
// Everything here is a pure function of its inputs. Malformed input is
// coerced, never rejected: the worst a client can get is an empty page.
package pagination

import "math"

// Page is one bounded slice of an ordered collection plus its position
// within the whole. A Page is built fresh per request and never mutated.
type Page[T any] struct {
	Items          []T  `json:"items"`
	CurrentPage    int  `json:"currentPage"`
	PageSize       int  `json:"pageSize"`
	TotalRowCount  int  `json:"totalRowCount"`
	PageCount      int  `json:"pageCount"`
	FirstRowOnPage int  `json:"firstRowOnPage"`
	LastRowOnPage  int  `json:"lastRowOnPage"`
	HasPrevious    bool `json:"hasPrevious"`
	HasNext        bool `json:"hasNext"`
}

// OutOfRange reports whether the served page lies past the last page.
// An empty collection is always out of range.
func (p Page[T]) OutOfRange() bool { return p.CurrentPage > p.PageCount }

// Paginate slices items using the default policy. page and pageSize are
// coerced the same way a query string would be.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	return FromSlice(items, DefaultPolicy().Normalize(page, pageSize))
}

// FromSlice slices an in-memory collection for a normalized request.
// The returned items never alias the caller's backing array.
func FromSlice[T any](items []T, r Request) Page[T] {
	r = r.sane()
	total := len(items)
	window := make([]T, 0)
	if start, ok := r.offset(); ok && start < total {
		end := start + r.PageSize
		if end > total {
			end = total
		}
		window = append(window, items[start:end]...)
	}
	return newPage(window, total, r)
}

// Map converts the items of a page, keeping every piece of metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{
		Items:          out,
		CurrentPage:    p.CurrentPage,
		PageSize:       p.PageSize,
		TotalRowCount:  p.TotalRowCount,
		PageCount:      p.PageCount,
		FirstRowOnPage: p.FirstRowOnPage,
		LastRowOnPage:  p.LastRowOnPage,
		HasPrevious:    p.HasPrevious,
		HasNext:        p.HasNext,
	}
}

// PageCount returns ceil(total/pageSize), or 0 for an empty collection.
func PageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return (total-1)/pageSize + 1
}

// newPage derives metadata from the window actually returned and the total
// the source reported. The window is trusted as-is even when it disagrees
// with what total implies (a source mutated between count and slice).
func newPage[T any](window []T, total int, r Request) Page[T] {
	if window == nil {
		window = make([]T, 0)
	}
	if total < 0 {
		total = 0
	}
	count := PageCount(total, r.PageSize)
	p := Page[T]{
		Items:         window,
		CurrentPage:   r.Page,
		PageSize:      r.PageSize,
		TotalRowCount: total,
		PageCount:     count,
		HasPrevious:   r.Page > 1,
		HasNext:       r.Page < count,
	}
	if r.Page <= count {
		p.FirstRowOnPage = (r.Page-1)*r.PageSize + 1
		p.LastRowOnPage = min(p.FirstRowOnPage+r.PageSize-1, total)
	}
	return p
}

// offset returns the zero-based skip for the request. ok is false when the
// skip does not fit in an int, which can only mean the page is out of range.
func (r Request) offset() (int, bool) {
	if r.Page-1 > math.MaxInt/r.PageSize {
		return 0, false
	}
	return (r.Page - 1) * r.PageSize, true
}
