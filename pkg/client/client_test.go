package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/recipe-catalog-service/internal/browse"
	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/pkg/client"
)

func recipes(n int) []model.Recipe {
	out := make([]model.Recipe, n)
	for i := range out {
		out[i] = model.Recipe{ID: int64(i + 1)}
	}
	return out
}

// listingServer answers like the real API for an in-memory collection.
func listingServer(t *testing.T, items []model.Recipe) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/recipes" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not_found","request_id":"rid-1"}`))
			return
		}
		req := pagination.ParseRequest(r.URL.Query(), pagination.DefaultPolicy())
		l := navigator.NewListing(pagination.FromSlice(items, req), navigator.LocationOf(r.URL), navigator.Options{})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(l)
	}))
}

func TestClient_Recipes(t *testing.T) {
	srv := listingServer(t, recipes(12))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	l, err := c.Recipes(context.Background(), "pageSize=5&page=3")
	require.NoError(t, err)
	assert.Len(t, l.Page.Items, 2)
	assert.Equal(t, 3, l.Page.CurrentPage)
	assert.Equal(t, 3, l.Page.PageCount)
	require.NotNil(t, l.Navigation.Previous)
	assert.Equal(t, "/api/v1/recipes?pageSize=5&page=2", l.Navigation.Previous.Href)
	assert.Nil(t, l.Navigation.Next)
}

func TestClient_APIError(t *testing.T) {
	srv := listingServer(t, nil)
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Ingredients(context.Background(), "")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "rid-1", apiErr.RequestID)
}

func TestClient_NewValidatesBaseURL(t *testing.T) {
	_, err := client.New("not a url")
	require.Error(t, err)
	_, err = client.New("/relative")
	require.Error(t, err)
}

func TestClient_DrivesBrowseController(t *testing.T) {
	srv := listingServer(t, recipes(25))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	ctrl := browse.NewController(c.RecipeFetcher(), "/recipes", navigator.Options{}, zerolog.New(io.Discard), nil)
	v, ok := ctrl.Navigate(context.Background(), "page=2")
	require.True(t, ok)
	assert.Equal(t, browse.StatusReady, v.Status)
	assert.Equal(t, 2, v.Plan.CurrentPage)
	require.Len(t, v.Plan.Entries, 10)
	assert.Equal(t, int64(11), v.Plan.Entries[0].Item.ID)

	v, err = ctrl.GoTo(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Plan.CurrentPage)
	assert.Len(t, v.Plan.Entries, 5)
}

func TestClient_HonorsContextCancel(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Recipes(ctx, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_RetriesSnapshotConflict(t *testing.T) {
	var hits atomic.Int32
	inner := listingServer(t, recipes(3))
	defer inner.Close()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"retry","message":"listing changed while reading, try again"}`))
			return
		}
		inner.Config.Handler.ServeHTTP(w, r)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithRetries(2, time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)

	l, err := c.Recipes(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, l.Page.Items, 3)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_input"}`))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithRetries(3, time.Millisecond, time.Millisecond))
	require.NoError(t, err)

	_, err = c.Recipes(context.Background(), "ingredient=-1")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid_input", apiErr.Code)
	assert.Equal(t, int32(1), hits.Load())
}
