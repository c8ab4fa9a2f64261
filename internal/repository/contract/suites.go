package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
)

// Seeder writes fixture rows; the repositories under test are read-only.
type Seeder interface {
	Recipe(ctx context.Context, title string, createdAt time.Time) (int64, error)
	Ingredient(ctx context.Context, name string) (int64, error)
	Use(ctx context.Context, recipeID, ingredientID int64) error
	Review(ctx context.Context, recipeID int64, rating int, createdAt time.Time) (int64, error)
}

type RecipeFactory func(t *testing.T) (repository.RecipeRepository, Seeder, func())

type IngredientFactory func(t *testing.T) (repository.IngredientRepository, Seeder, func())

type ReviewFactory func(t *testing.T) (repository.ReviewRepository, Seeder, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, recipes repository.RecipeRepository, seed Seeder, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

var base = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func seedRecipes(t *testing.T, s Seeder, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := s.Recipe(context.Background(), fmt.Sprintf("Recipe %02d", i), base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatalf("seed recipe %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func RunRecipeRepositoryContract(t *testing.T, makeRepo RecipeFactory) {
	t.Helper()

	t.Run("get_with_review_stats", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		ids := seedRecipes(t, seed, 1)
		for _, rating := range []int{4, 5} {
			if _, err := seed.Review(ctx, ids[0], rating, base); err != nil {
				t.Fatalf("seed review: %v", err)
			}
		}
		got, err := repo.GetByID(ctx, ids[0])
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ReviewCount != 2 || got.AverageRating != 4.5 {
			t.Fatalf("unexpected stats: count=%d avg=%v", got.ReviewCount, got.AverageRating)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		ids := seedRecipes(t, seed, 7)

		res, err := repo.List(ctx, model.RecipeFilter{}, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		// newest first
		if res.Items[0].ID != ids[6] {
			t.Fatalf("expected newest recipe first, got %d", res.Items[0].ID)
		}
		last, err := repo.List(ctx, model.RecipeFilter{}, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list last: %v", err)
		}
		if len(last.Items) != 1 || last.Items[0].ID != ids[0] {
			t.Fatalf("unexpected last page: %+v", last.Items)
		}
	})

	t.Run("offset_past_end_keeps_total", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedRecipes(t, seed, 4)
		res, err := repo.List(context.Background(), model.RecipeFilter{}, repository.Page{Limit: 10, Offset: 50})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 4 {
			t.Fatalf("expected empty window with total 4, got len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("filters", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		ids := seedRecipes(t, seed, 5)
		pasta, err := seed.Ingredient(ctx, "pasta")
		if err != nil {
			t.Fatalf("seed ingredient: %v", err)
		}
		for _, id := range ids[:2] {
			if err := seed.Use(ctx, id, pasta); err != nil {
				t.Fatalf("seed use: %v", err)
			}
		}

		byIngredient, err := repo.List(ctx, model.RecipeFilter{IngredientID: pasta}, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list by ingredient: %v", err)
		}
		if byIngredient.Total != 2 {
			t.Fatalf("expected 2 recipes with pasta, got %d", byIngredient.Total)
		}

		bySearch, err := repo.List(ctx, model.RecipeFilter{Search: "recipe 03"}, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list by search: %v", err)
		}
		if bySearch.Total != 1 || bySearch.Items[0].ID != ids[3] {
			t.Fatalf("unexpected search result: %+v", bySearch)
		}

		wildcard, err := repo.List(ctx, model.RecipeFilter{Search: "%"}, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list by wildcard: %v", err)
		}
		if wildcard.Total != 0 {
			t.Fatalf("expected literal %% match to find nothing, got %d", wildcard.Total)
		}
	})
}

func RunIngredientRepositoryContract(t *testing.T, makeRepo IngredientFactory) {
	t.Helper()

	t.Run("list_sorted_with_usage", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		ids := seedRecipes(t, seed, 2)
		names := []string{"thyme", "basil", "salt"}
		var salt int64
		for _, n := range names {
			id, err := seed.Ingredient(ctx, n)
			if err != nil {
				t.Fatalf("seed ingredient: %v", err)
			}
			if n == "salt" {
				salt = id
			}
		}
		for _, r := range ids {
			if err := seed.Use(ctx, r, salt); err != nil {
				t.Fatalf("seed use: %v", err)
			}
		}

		res, err := repo.List(ctx, "", repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 3 || len(res.Items) != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].Name != "basil" || res.Items[1].Name != "salt" || res.Items[1].RecipeCount != 2 {
			t.Fatalf("unexpected order or counts: %+v", res.Items)
		}
	})

	t.Run("search", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for _, n := range []string{"brown sugar", "sugar", "flour"} {
			if _, err := seed.Ingredient(ctx, n); err != nil {
				t.Fatalf("seed ingredient: %v", err)
			}
		}
		res, err := repo.List(ctx, "SUGAR", repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 {
			t.Fatalf("expected 2 matches, got %d", res.Total)
		}
	})
}

func RunReviewRepositoryContract(t *testing.T, makeRepo ReviewFactory) {
	t.Helper()

	t.Run("list_by_recipe", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		ids := seedRecipes(t, seed, 2)
		for i := 0; i < 5; i++ {
			if _, err := seed.Review(ctx, ids[0], 1+i%5, base.Add(time.Duration(i)*time.Minute)); err != nil {
				t.Fatalf("seed review: %v", err)
			}
		}
		if _, err := seed.Review(ctx, ids[1], 3, base); err != nil {
			t.Fatalf("seed review: %v", err)
		}

		res, err := repo.ListByRecipe(ctx, ids[0], repository.Page{Limit: 2, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 5 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if !res.Items[0].CreatedAt.After(res.Items[1].CreatedAt) {
			t.Fatalf("expected newest review first")
		}
	})

	t.Run("unknown_recipe", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.ListByRecipe(context.Background(), 4242, repository.Page{Limit: 5})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("recipe_without_reviews", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ids := seedRecipes(t, seed, 1)
		res, err := repo.ListByRecipe(context.Background(), ids[0], repository.Page{Limit: 5})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 0 || len(res.Items) != 0 {
			t.Fatalf("expected empty result, got %+v", res)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("snapshot_ignores_concurrent_insert", func(t *testing.T) {
		tx, recipes, seed, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seedRecipes(t, seed, 3)

		var first, second int
		err := tx.WithinSnapshot(ctx, func(ctx context.Context) error {
			res, err := recipes.List(ctx, model.RecipeFilter{}, repository.Page{Limit: 10})
			if err != nil {
				return err
			}
			first = res.Total
			// seeder runs outside the snapshot
			if _, err := seed.Recipe(context.Background(), "late", base); err != nil {
				return err
			}
			res, err = recipes.List(ctx, model.RecipeFilter{}, repository.Page{Limit: 10})
			if err != nil {
				return err
			}
			second = res.Total
			return nil
		})
		if err != nil {
			t.Fatalf("WithinSnapshot: %v", err)
		}
		if first != 3 || second != 3 {
			t.Fatalf("snapshot leaked a concurrent insert: first=%d second=%d", first, second)
		}
	})

	t.Run("snapshot_propagates_error", func(t *testing.T) {
		tx, _, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		marker := errors.New("boom")
		err := tx.WithinSnapshot(context.Background(), func(context.Context) error { return marker })
		if !errors.Is(err, marker) {
			t.Fatalf("expected marker error, got %v", err)
		}
	})

	t.Run("within_tx_commits", func(t *testing.T) {
		tx, recipes, seed, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ids := seedRecipes(t, seed, 1)
		err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
			_, err := recipes.GetByID(ctx, ids[0])
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
