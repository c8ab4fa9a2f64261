package pagination

import (
	"context"
	"fmt"
)

// Source is an ordered, countable backing store. Window must return the
// requested slice and the total row count from one consistent snapshot;
// Source implementations own that guarantee, FromSource cannot check it.
type Source[T any] interface {
	Window(ctx context.Context, limit, offset int) (items []T, total int, err error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc[T any] func(ctx context.Context, limit, offset int) ([]T, int, error)

// Window implements Source.
func (f SourceFunc[T]) Window(ctx context.Context, limit, offset int) ([]T, int, error) {
	return f(ctx, limit, offset)
}

// FromSource fetches one page from src. A page past the end is not an
// error: the source reports the total and an empty window.
func FromSource[T any](ctx context.Context, src Source[T], r Request) (Page[T], error) {
	r = r.sane()
	items, total, err := src.Window(ctx, r.Limit(), r.Offset())
	if err != nil {
		return Page[T]{}, fmt.Errorf("fetch page %d: %w", r.Page, err)
	}
	if len(items) > r.PageSize {
		items = items[:r.PageSize]
	}
	return newPage(items, total, r), nil
}

// SliceSource serves windows out of an in-memory collection.
type SliceSource[T any] []T

// Window implements Source.
func (s SliceSource[T]) Window(_ context.Context, limit, offset int) ([]T, int, error) {
	total := len(s)
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return []T{}, total, nil
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	out := make([]T, end-offset)
	copy(out, s[offset:end])
	return out, total, nil
}
