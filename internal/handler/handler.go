package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/recipe-catalog-service/internal/metrics"
	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/internal/service"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Pinger      Pinger
	Recipes     service.RecipeService
	Ingredients service.IngredientService
	Policy      pagination.Policy
	// Ad is the in-feed slot for public recipe listings; nil disables it.
	Ad      *navigator.AdSlotConfig
	Links   navigator.LinkBuilder
	Metrics metrics.Recorder
	Logger  zerolog.Logger
}

// Register mounts middleware and all public routes on the given engine.
func Register(r *gin.Engine, d Deps) {
	r.Use(RequestID(), AccessLog(d.Logger), metrics.HTTPMetricsMiddleware(d.Metrics))

	h := NewHealthHandler(d.Pinger)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	publicOpts := navigator.Options{Ad: d.Ad, Links: d.Links}
	adminOpts := navigator.Options{Links: d.Links}

	// HTML pages
	r.SetHTMLTemplate(mustTemplates())
	NewWebHandler(d.Recipes, d.Ingredients, d.Policy, publicOpts, adminOpts, d.Logger).Register(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewRecipeHandler(d.Recipes, d.Policy, publicOpts).Register(api)
		NewIngredientHandler(d.Ingredients, d.Policy, adminOpts).Register(api)
	}
}
