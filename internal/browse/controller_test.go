package browse_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/recipe-catalog-service/internal/browse"
	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
)

var quiet = zerolog.New(io.Discard)

func catalog(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

// sliceFetcher pages an in-memory catalog the way the API would.
func sliceFetcher(items []string) browse.FetcherFunc[string] {
	return func(_ context.Context, rawQuery string) (pagination.Page[string], error) {
		return pagination.Paginate(items, navigator.CurrentPage(rawQuery), 10), nil
	}
}

func TestController_NavigateReady(t *testing.T) {
	var seen []browse.Status
	c := browse.NewController[string](sliceFetcher(catalog(25)), "/recipes", navigator.Options{}, quiet, func(v browse.View[string]) {
		seen = append(seen, v.Status)
	})

	v, ok := c.Navigate(context.Background(), "search=x&page=2")
	require.True(t, ok)
	assert.Equal(t, browse.StatusReady, v.Status)
	assert.False(t, v.ControlsDisabled)
	assert.Equal(t, 2, v.Plan.CurrentPage)
	assert.Len(t, v.Plan.Entries, 10)
	assert.Equal(t, []browse.Status{browse.StatusLoading, browse.StatusReady}, seen)
}

func TestController_ClickMatchesDeepLink(t *testing.T) {
	opts := navigator.Options{Ad: &navigator.AdSlotConfig{InsertAtIndex: 3}}
	clicked := browse.NewController[string](sliceFetcher(catalog(25)), "/recipes", opts, quiet, nil)
	_, ok := clicked.Navigate(context.Background(), "search=x")
	require.True(t, ok)
	viaClick, err := clicked.GoTo(context.Background(), 3)
	require.NoError(t, err)

	deep := browse.NewController[string](sliceFetcher(catalog(25)), "/recipes", opts, quiet, nil)
	viaURL, ok := deep.Navigate(context.Background(), "search=x&page=3")
	require.True(t, ok)

	assert.Equal(t, viaURL.Plan, viaClick.Plan)
	assert.Equal(t, "search=x&page=3", viaClick.RawQuery)
}

func TestController_LastRequestWins(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetcher := browse.FetcherFunc[string](func(ctx context.Context, rawQuery string) (pagination.Page[string], error) {
		if navigator.CurrentPage(rawQuery) == 1 {
			close(started)
			<-release
			// ignores cancellation on purpose: a slow server answering late
			return pagination.Paginate([]string{"stale"}, 1, 10), nil
		}
		return pagination.Paginate(catalog(25), navigator.CurrentPage(rawQuery), 10), nil
	})
	c := browse.NewController[string](fetcher, "/recipes", navigator.Options{}, quiet, nil)

	var wg sync.WaitGroup
	var firstOK bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstOK = c.Navigate(context.Background(), "")
	}()
	<-started

	v, ok := c.Navigate(context.Background(), "page=2")
	require.True(t, ok)
	close(release)
	wg.Wait()

	assert.False(t, firstOK, "superseded navigation must be discarded")
	assert.Equal(t, v, c.View())
	assert.Equal(t, 2, c.View().Plan.CurrentPage)
	assert.Equal(t, "K", c.View().Plan.Entries[0].Item)
}

func TestController_SupersededFetchIsCancelled(t *testing.T) {
	cancelled := make(chan struct{})
	started := make(chan struct{})
	fetcher := browse.FetcherFunc[string](func(ctx context.Context, rawQuery string) (pagination.Page[string], error) {
		if rawQuery == "page=2" {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return pagination.Page[string]{}, ctx.Err()
		}
		return pagination.Paginate(catalog(25), 3, 10), nil
	})
	c := browse.NewController[string](fetcher, "/recipes", navigator.Options{}, quiet, nil)

	done := make(chan bool)
	go func() {
		_, ok := c.Navigate(context.Background(), "page=2")
		done <- ok
	}()
	<-started
	_, ok := c.Navigate(context.Background(), "page=3")
	require.True(t, ok)
	<-cancelled
	assert.False(t, <-done)
	assert.Equal(t, browse.StatusReady, c.View().Status)
}

func TestController_FailureIsRecoverable(t *testing.T) {
	fail := true
	fetcher := browse.FetcherFunc[string](func(ctx context.Context, rawQuery string) (pagination.Page[string], error) {
		if fail {
			return pagination.Page[string]{}, errors.New("network down")
		}
		return pagination.Paginate(catalog(5), 1, 10), nil
	})
	c := browse.NewController[string](fetcher, "/recipes", navigator.Options{}, quiet, nil)

	v, ok := c.Navigate(context.Background(), "page=1")
	require.True(t, ok)
	assert.Equal(t, browse.StatusFailed, v.Status)
	assert.True(t, v.CanRetry)
	assert.False(t, v.ControlsDisabled)
	assert.Empty(t, v.Plan.Entries)
	assert.EqualError(t, v.Err, "network down")

	fail = false
	v, ok = c.Retry(context.Background())
	require.True(t, ok)
	assert.Equal(t, browse.StatusReady, v.Status)
	assert.Len(t, v.Plan.Entries, 5)
}

func TestController_PanickingFetcherBecomesFailure(t *testing.T) {
	fetcher := browse.FetcherFunc[string](func(context.Context, string) (pagination.Page[string], error) {
		panic("decoder exploded")
	})
	c := browse.NewController[string](fetcher, "/recipes", navigator.Options{}, quiet, nil)
	v, ok := c.Navigate(context.Background(), "")
	require.True(t, ok)
	assert.Equal(t, browse.StatusFailed, v.Status)
	assert.Contains(t, v.Err.Error(), "decoder exploded")
}

func TestController_LoadingViewDisablesControls(t *testing.T) {
	c := browse.NewController[string](sliceFetcher(catalog(25)), "/recipes", navigator.Options{}, quiet, func(v browse.View[string]) {
		assert.Equal(t, v.Status == browse.StatusLoading, v.ControlsDisabled)
	})
	_, ok := c.Navigate(context.Background(), "")
	require.True(t, ok)
	_, err := c.GoTo(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.View().Plan.CurrentPage)
}

func TestController_GoToRejectedMidFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetcher := browse.FetcherFunc[string](func(ctx context.Context, rawQuery string) (pagination.Page[string], error) {
		close(started)
		<-release
		return pagination.Paginate(catalog(25), 1, 10), nil
	})
	c := browse.NewController[string](fetcher, "/recipes", navigator.Options{}, quiet, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Navigate(context.Background(), "")
	}()
	<-started
	_, err := c.GoTo(context.Background(), 2)
	assert.ErrorIs(t, err, browse.ErrControlsDisabled)
	close(release)
	<-done
}

func TestController_SupersededGoToReturnsNewerView(t *testing.T) {
	started := make(chan struct{})
	fetcher := browse.FetcherFunc[string](func(ctx context.Context, rawQuery string) (pagination.Page[string], error) {
		if rawQuery == "page=2" {
			close(started)
			<-ctx.Done()
			return pagination.Page[string]{}, ctx.Err()
		}
		return pagination.Paginate(catalog(25), navigator.CurrentPage(rawQuery), 10), nil
	})
	c := browse.NewController[string](fetcher, "/recipes", navigator.Options{}, quiet, nil)

	type result struct {
		v   browse.View[string]
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := c.GoTo(context.Background(), 2)
		done <- result{v, err}
	}()
	<-started

	_, ok := c.Navigate(context.Background(), "page=3")
	require.True(t, ok)

	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, "page=3", got.v.RawQuery)
	assert.NotEqual(t, browse.StatusIdle, got.v.Status)
}
