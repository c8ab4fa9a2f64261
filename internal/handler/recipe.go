package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/internal/service"
	"github.com/maxviazov/recipe-catalog-service/pkg/response"
)

type RecipeHandler struct {
	svc    service.RecipeService
	policy pagination.Policy
	opts   navigator.Options
}

func NewRecipeHandler(svc service.RecipeService, policy pagination.Policy, opts navigator.Options) *RecipeHandler {
	return &RecipeHandler{svc: svc, policy: policy, opts: opts}
}

func (h *RecipeHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/recipes")
	{
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.GET("/:id/reviews", h.reviews)
	}
}

func (h *RecipeHandler) list(c *gin.Context) {
	f, err := recipeFilter(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	req := pagination.ParseRequest(c.Request.URL.Query(), h.policy)
	page, err := h.svc.ListRecipes(c.Request.Context(), f, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, navigator.NewListing(page, navigator.LocationOf(c.Request.URL), h.opts))
}

func (h *RecipeHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	recipe, err := h.svc.GetRecipe(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, recipe)
}

// reviews never carries an ad slot.
func (h *RecipeHandler) reviews(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	req := pagination.ParseRequest(c.Request.URL.Query(), h.policy)
	page, err := h.svc.ListReviews(c.Request.Context(), id, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	opts := navigator.Options{Links: h.opts.Links}
	response.WriteData(c, http.StatusOK, navigator.NewListing(page, navigator.LocationOf(c.Request.URL), opts))
}
