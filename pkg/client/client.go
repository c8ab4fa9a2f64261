// Package client is a small HTTP client for the catalog listing API. Its
// fetchers plug straight into browse.Controller.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"

	"github.com/maxviazov/recipe-catalog-service/internal/browse"
	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
)

const (
	recipesPath     = "/api/v1/recipes"
	ingredientsPath = "/api/v1/ingredients"

	defaultTimeout       = 10 * time.Second
	defaultMaxRetries    = 2
	defaultRetryDelay    = 100 * time.Millisecond
	defaultMaxRetryDelay = time.Second
	maxErrorBody         = 64 << 10
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status    int    `json:"-"`
	Code      string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error %d", e.Status)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Client talks to one catalog deployment. Transient failures such as a
// 503 "retry" after a snapshot conflict are retried with backoff until
// the request context ends.
type Client struct {
	base *url.URL
	rc   *retry.Client
}

type settings struct {
	hc            *http.Client
	timeout       time.Duration
	maxRetries    int
	retryDelay    time.Duration
	maxRetryDelay time.Duration
}

// Option configures a Client.
type Option func(*settings)

// WithHTTPClient replaces the underlying http.Client; WithTimeout is then ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		if hc != nil {
			s.hc = hc
		}
	}
}

// WithTimeout bounds a single attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRetries sets how many extra attempts a transient failure gets and
// the backoff bounds between them. maxRetries 0 disables retrying.
func WithRetries(maxRetries int, delay, maxDelay time.Duration) Option {
	return func(s *settings) {
		if maxRetries >= 0 {
			s.maxRetries = maxRetries
		}
		if delay > 0 {
			s.retryDelay = delay
		}
		if maxDelay > 0 {
			s.maxRetryDelay = maxDelay
		}
	}
}

// New returns a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("base url must be absolute")
	}

	s := settings{
		timeout:       defaultTimeout,
		maxRetries:    defaultMaxRetries,
		retryDelay:    defaultRetryDelay,
		maxRetryDelay: defaultMaxRetryDelay,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.maxRetryDelay < s.retryDelay {
		s.maxRetryDelay = s.retryDelay
	}

	hc := s.hc
	if hc == nil {
		hc, err = httpclient.NewAuthClient(httpclient.AuthModeNone, "", httpclient.WithTimeout(s.timeout))
		if err != nil {
			return nil, fmt.Errorf("create http client: %w", err)
		}
	}
	rc, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(hc),
		retry.WithMaxRetries(s.maxRetries),
		retry.WithInitialRetryDelay(s.retryDelay),
		retry.WithMaxRetryDelay(s.maxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("create retry client: %w", err)
	}
	return &Client{base: u, rc: rc}, nil
}

// Recipes lists recipes for a raw query string such as "q=soup&page=2".
func (c *Client) Recipes(ctx context.Context, rawQuery string) (navigator.Listing[model.Recipe], error) {
	return fetch[model.Recipe](ctx, c, recipesPath, rawQuery)
}

// Reviews lists reviews of one recipe.
func (c *Client) Reviews(ctx context.Context, recipeID int64, rawQuery string) (navigator.Listing[model.Review], error) {
	return fetch[model.Review](ctx, c, fmt.Sprintf("%s/%d/reviews", recipesPath, recipeID), rawQuery)
}

// Ingredients lists ingredients.
func (c *Client) Ingredients(ctx context.Context, rawQuery string) (navigator.Listing[model.Ingredient], error) {
	return fetch[model.Ingredient](ctx, c, ingredientsPath, rawQuery)
}

// RecipeFetcher adapts Recipes to browse.Fetcher.
func (c *Client) RecipeFetcher() browse.Fetcher[model.Recipe] {
	return browse.FetcherFunc[model.Recipe](func(ctx context.Context, rawQuery string) (pagination.Page[model.Recipe], error) {
		l, err := c.Recipes(ctx, rawQuery)
		return l.Page, err
	})
}

// IngredientFetcher adapts Ingredients to browse.Fetcher.
func (c *Client) IngredientFetcher() browse.Fetcher[model.Ingredient] {
	return browse.FetcherFunc[model.Ingredient](func(ctx context.Context, rawQuery string) (pagination.Page[model.Ingredient], error) {
		l, err := c.Ingredients(ctx, rawQuery)
		return l.Page, err
	})
}

func fetch[T any](ctx context.Context, c *Client, path, rawQuery string) (navigator.Listing[T], error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = rawQuery

	res, err := c.rc.Get(ctx, u.String())
	if err != nil {
		if res != nil {
			res.Body.Close()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return navigator.Listing[T]{}, fmt.Errorf("get %s: %w", path, ctxErr)
		}
		return navigator.Listing[T]{}, fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		_ = json.Unmarshal(body, apiErr)
		return navigator.Listing[T]{}, apiErr
	}

	var out navigator.Listing[T]
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return navigator.Listing[T]{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if out.Page.Items == nil {
		out.Page.Items = []T{}
	}
	return out, nil
}
