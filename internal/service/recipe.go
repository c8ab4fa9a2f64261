package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/recipe-catalog-service/internal/metrics"
	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
)

// recipeService holds recipe use-case logic: validation + paging, no transport / SQL details.
type recipeService struct {
	recipes repository.RecipeRepository
	reviews repository.ReviewRepository
	policy  pagination.Policy
	metrics metrics.Recorder
	log     zerolog.Logger
}

func NewRecipeService(
	recipes repository.RecipeRepository,
	reviews repository.ReviewRepository,
	policy pagination.Policy,
	rec metrics.Recorder,
	logger zerolog.Logger,
) RecipeService {
	l := logger.With().Str("module", "service").Str("component", "recipe").Logger()
	return &recipeService{recipes: recipes, reviews: reviews, policy: policy, metrics: recorderOrNoop(rec), log: l}
}

func (s *recipeService) ListRecipes(ctx context.Context, f model.RecipeFilter, req pagination.Request) (pagination.Page[model.Recipe], error) {
	start := time.Now()
	f.Search = NormalizeSearch(f.Search)

	var ferrs []FieldError
	ferrs = validateSearch(f.Search, ferrs)
	if f.IngredientID < 0 {
		ferrs = append(ferrs, FieldError{Field: "ingredient", Message: "must not be negative"})
	}
	if err := NewInvalidInputError(ferrs...); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("recipe listing validation failed")
		return pagination.Page[model.Recipe]{}, err
	}

	req = s.policy.Normalize(req.Page, req.PageSize)
	src := repoSource(func(ctx context.Context, p repository.Page) (repository.PageResult[model.Recipe], error) {
		return s.recipes.List(ctx, f, p)
	})
	page, err := fetchPage(ctx, s.metrics, ListingRecipes, src, req)
	if err != nil {
		s.log.Error().Err(err).Int("page", req.Page).Int("page_size", req.PageSize).Str("q", f.Search).Msg("list recipes failed")
		return pagination.Page[model.Recipe]{}, err
	}
	s.log.Debug().
		Dur("took", time.Since(start)).
		Int("page", page.CurrentPage).
		Int("page_count", page.PageCount).
		Int("total", page.TotalRowCount).
		Msg("recipes listed")
	return page, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id int64) (model.Recipe, error) {
	if id <= 0 {
		return model.Recipe{}, NewInvalidInputError(FieldError{Field: "id", Message: "must be > 0"})
	}
	return s.recipes.GetByID(ctx, id)
}

func (s *recipeService) ListReviews(ctx context.Context, recipeID int64, req pagination.Request) (pagination.Page[model.Review], error) {
	if recipeID <= 0 {
		return pagination.Page[model.Review]{}, NewInvalidInputError(FieldError{Field: "id", Message: "must be > 0"})
	}
	req = s.policy.Normalize(req.Page, req.PageSize)
	src := repoSource(func(ctx context.Context, p repository.Page) (repository.PageResult[model.Review], error) {
		return s.reviews.ListByRecipe(ctx, recipeID, p)
	})
	page, err := fetchPage(ctx, s.metrics, ListingReviews, src, req)
	if err != nil {
		// unknown recipe surfaces as ErrNotFound through the wrap
		s.log.Error().Err(err).Int64("recipe_id", recipeID).Int("page", req.Page).Msg("list reviews failed")
		return pagination.Page[model.Review]{}, err
	}
	return page, nil
}
