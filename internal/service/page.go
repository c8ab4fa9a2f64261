package service

import (
	"context"

	"github.com/maxviazov/recipe-catalog-service/internal/metrics"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
)

// Listing names used as metric labels and log fields.
const (
	ListingRecipes     = "recipes"
	ListingReviews     = "reviews"
	ListingIngredients = "ingredients"
)

// repoSource adapts a repository list call to pagination.Source.
func repoSource[T any](list func(ctx context.Context, p repository.Page) (repository.PageResult[T], error)) pagination.Source[T] {
	return pagination.SourceFunc[T](func(ctx context.Context, limit, offset int) ([]T, int, error) {
		res, err := list(ctx, repository.Page{Limit: limit, Offset: offset})
		if err != nil {
			return nil, 0, err
		}
		return res.Items, res.Total, nil
	})
}

// fetchPage runs one page through the engine and records the outcome.
func fetchPage[T any](ctx context.Context, rec metrics.Recorder, listing string, src pagination.Source[T], req pagination.Request) (pagination.Page[T], error) {
	p, err := pagination.FromSource(ctx, src, req)
	if err != nil {
		rec.RecordFetchError(listing)
		return pagination.Page[T]{}, err
	}
	rec.RecordPage(listing, p.PageSize, p.OutOfRange() && p.TotalRowCount > 0, p.TotalRowCount == 0)
	return p, nil
}

func recorderOrNoop(rec metrics.Recorder) metrics.Recorder {
	if rec == nil {
		return metrics.NewNoopMetrics()
	}
	return rec
}
