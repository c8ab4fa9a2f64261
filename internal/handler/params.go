package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/service"
)

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewInvalidInputError(service.FieldError{Field: name, Message: "must be a positive integer"})
	}
	return id, nil
}

// recipeFilter reads the recipe listing filters from the query string.
func recipeFilter(c *gin.Context) (model.RecipeFilter, error) {
	f := model.RecipeFilter{Search: c.Query(queryKeySearch)}
	if raw := strings.TrimSpace(c.Query(queryKeyIngredient)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return f, service.NewInvalidInputError(service.FieldError{Field: queryKeyIngredient, Message: "must be a positive integer"})
		}
		f.IngredientID = id
	}
	return f, nil
}
