package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

// Server-rendered listing pages.
const (
	RecipesPagePath     = "/recipes"
	IngredientsPagePath = "/admin/ingredients"
)

// Query keys shared by the JSON API and the HTML pages.
const (
	queryKeySearch     = "q"
	queryKeyIngredient = "ingredient"
)
