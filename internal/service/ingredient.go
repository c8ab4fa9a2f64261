package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maxviazov/recipe-catalog-service/internal/metrics"
	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
)

type ingredientService struct {
	repo    repository.IngredientRepository
	policy  pagination.Policy
	metrics metrics.Recorder
	log     zerolog.Logger
}

func NewIngredientService(repo repository.IngredientRepository, policy pagination.Policy, rec metrics.Recorder, logger zerolog.Logger) IngredientService {
	l := logger.With().Str("module", "service").Str("component", "ingredient").Logger()
	return &ingredientService{repo: repo, policy: policy, metrics: recorderOrNoop(rec), log: l}
}

func (s *ingredientService) ListIngredients(ctx context.Context, search string, req pagination.Request) (pagination.Page[model.Ingredient], error) {
	search = NormalizeSearch(search)
	if ferrs := validateSearch(search, nil); len(ferrs) > 0 {
		return pagination.Page[model.Ingredient]{}, NewInvalidInputError(ferrs...)
	}

	req = s.policy.Normalize(req.Page, req.PageSize)
	src := repoSource(func(ctx context.Context, p repository.Page) (repository.PageResult[model.Ingredient], error) {
		return s.repo.List(ctx, search, p)
	})
	page, err := fetchPage(ctx, s.metrics, ListingIngredients, src, req)
	if err != nil {
		s.log.Error().Err(err).Int("page", req.Page).Str("q", search).Msg("list ingredients failed")
		return pagination.Page[model.Ingredient]{}, err
	}
	return page, nil
}
