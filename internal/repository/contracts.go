package repository

import (
	"context"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
	// WithinSnapshot runs fn in a read-only transaction where every
	// statement sees the same snapshot, so a count and the window it
	// describes cannot disagree.
	WithinSnapshot(ctx context.Context, fn TxFunc) error
}

// RecipeRepository declares read operations for recipes.
// Listings are ordered newest first, ties broken by id.
type RecipeRepository interface {
	GetByID(ctx context.Context, id int64) (model.Recipe, error)
	List(ctx context.Context, f model.RecipeFilter, p Page) (PageResult[model.Recipe], error)
}

// IngredientRepository declares read operations for ingredients, ordered by name.
type IngredientRepository interface {
	List(ctx context.Context, search string, p Page) (PageResult[model.Ingredient], error)
}

// ReviewRepository declares read operations for reviews, newest first.
// ListByRecipe returns ErrNotFound when the recipe itself does not exist.
type ReviewRepository interface {
	ListByRecipe(ctx context.Context, recipeID int64, p Page) (PageResult[model.Review], error)
}
