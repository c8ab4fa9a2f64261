// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: input validation, page assembly and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
// Handlers use it for malformed path parameters.
func NewInvalidInputError(fe ...FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// RecipeService defines the public catalog use cases.
type RecipeService interface {
	ListRecipes(ctx context.Context, f model.RecipeFilter, req pagination.Request) (pagination.Page[model.Recipe], error)
	GetRecipe(ctx context.Context, id int64) (model.Recipe, error)
	ListReviews(ctx context.Context, recipeID int64, req pagination.Request) (pagination.Page[model.Review], error)
}

// IngredientService defines the admin ingredient use cases.
type IngredientService interface {
	ListIngredients(ctx context.Context, search string, req pagination.Request) (pagination.Page[model.Ingredient], error)
}
