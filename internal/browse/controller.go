// Package browse keeps client-side page state in step with the URL. It
// owns the one asynchronous edge of pagination: fetching a page. Every
// navigation supersedes the previous one and late results are dropped.
package browse

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
)

// ErrControlsDisabled is returned when a page control is used while a
// fetch is in flight.
var ErrControlsDisabled = errors.New("page controls disabled while loading")

// Status is the fetch lifecycle of the current view.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Fetcher loads one page for a query string. It must honor ctx.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, rawQuery string) (pagination.Page[T], error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, rawQuery string) (pagination.Page[T], error)

// FetchPage implements Fetcher.
func (f FetcherFunc[T]) FetchPage(ctx context.Context, rawQuery string) (pagination.Page[T], error) {
	return f(ctx, rawQuery)
}

// View is what the client draws. While loading, the previous plan stays
// visible with its controls disabled.
type View[T any] struct {
	Status           Status
	ControlsDisabled bool
	RawQuery         string
	Plan             navigator.RenderPlan[T]
	Err              error
	CanRetry         bool
}

// Controller serializes navigation for one listing surface.
type Controller[T any] struct {
	fetcher  Fetcher[T]
	path     string
	opts     navigator.Options
	onChange func(View[T])
	log      zerolog.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	view   View[T]
}

// NewController wires a controller for the listing at path. onChange may be
// nil; when set it is called with the controller locked and must not call
// back into the controller.
func NewController[T any](f Fetcher[T], path string, opts navigator.Options, logger zerolog.Logger, onChange func(View[T])) *Controller[T] {
	l := logger.With().Str("module", "browse").Str("path", path).Logger()
	return &Controller[T]{
		fetcher:  f,
		path:     path,
		opts:     opts,
		onChange: onChange,
		log:      l,
		view:     View[T]{Status: StatusIdle},
	}
}

// View returns the current view.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Navigate loads the page for rawQuery, as on a deep link or a history
// change. It cancels any fetch still in flight. The returned bool is false
// when a newer navigation superseded this one; its result is dropped and
// the newer navigation's view is returned instead.
func (c *Controller[T]) Navigate(ctx context.Context, rawQuery string) (View[T], bool) {
	c.mu.Lock()
	c.seq++
	id := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel
	c.view.Status = StatusLoading
	c.view.ControlsDisabled = true
	c.view.RawQuery = rawQuery
	c.view.Err = nil
	c.view.CanRetry = false
	c.publishLocked()
	c.mu.Unlock()

	page, err := c.fetch(fetchCtx, rawQuery)

	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.seq {
		c.log.Debug().Str("query", rawQuery).Uint64("request", id).Uint64("latest", c.seq).Msg("dropping superseded page result")
		return c.view, false
	}
	c.cancel = nil
	loc := navigator.Location{Path: c.path, RawQuery: rawQuery}
	if err != nil {
		c.log.Warn().Err(err).Str("query", rawQuery).Msg("page fetch failed")
		c.view = View[T]{
			Status:   StatusFailed,
			RawQuery: rawQuery,
			Plan:     navigator.Build(pagination.Page[T]{Items: []T{}, CurrentPage: navigator.CurrentPage(rawQuery)}, loc, c.opts),
			Err:      err,
			CanRetry: true,
		}
	} else {
		c.view = View[T]{
			Status:   StatusReady,
			RawQuery: rawQuery,
			Plan:     navigator.Build(page, loc, c.opts),
		}
	}
	c.publishLocked()
	return c.view, true
}

// GoTo follows a page control. Controls are inert while a fetch is in
// flight, exactly like disabled buttons.
func (c *Controller[T]) GoTo(ctx context.Context, page int) (View[T], error) {
	c.mu.Lock()
	disabled := c.view.ControlsDisabled
	current := c.view.RawQuery
	c.mu.Unlock()
	if disabled {
		return c.View(), ErrControlsDisabled
	}
	target, err := url.Parse(navigator.Href(c.path, current, page))
	if err != nil {
		return c.View(), fmt.Errorf("build link for page %d: %w", page, err)
	}
	// a superseded click yields the newer navigation's view
	v, _ := c.Navigate(ctx, target.RawQuery)
	return v, nil
}

// Retry re-issues the last requested query.
func (c *Controller[T]) Retry(ctx context.Context) (View[T], bool) {
	return c.Navigate(ctx, c.View().RawQuery)
}

// fetch turns a panicking fetcher into an error so a broken transport can
// only ever produce the failed view.
func (c *Controller[T]) fetch(ctx context.Context, rawQuery string) (p pagination.Page[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return c.fetcher.FetchPage(ctx, rawQuery)
}

func (c *Controller[T]) publishLocked() {
	if c.onChange != nil {
		c.onChange(c.view)
	}
}
