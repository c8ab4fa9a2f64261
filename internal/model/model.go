// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Recipe is a catalog entry as it appears in listings.
type Recipe struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	AuthorName    string    `json:"author_name"`
	PrepMinutes   int       `json:"prep_minutes"`
	AverageRating float32   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Ingredient is managed by administrators and referenced by recipes.
type Ingredient struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	RecipeCount int       `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Review is one user's rating of a recipe.
type Review struct {
	ID         int64     `json:"id"`
	RecipeID   int64     `json:"recipe_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"` // 1..5
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecipeFilter narrows a recipe listing. Zero values mean "no filter".
type RecipeFilter struct {
	Search       string
	IngredientID int64
}
