package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/internal/service"
	"github.com/maxviazov/recipe-catalog-service/pkg/response"
)

//go:embed templates/*.html
var templateFS embed.FS

func mustTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// WebHandler renders the listing pages. Every page control is a plain link,
// so a crawler and a deep link see exactly what a click would load.
type WebHandler struct {
	recipes     service.RecipeService
	ingredients service.IngredientService
	policy      pagination.Policy
	public      navigator.Options
	admin       navigator.Options
	log         zerolog.Logger
}

func NewWebHandler(
	recipes service.RecipeService,
	ingredients service.IngredientService,
	policy pagination.Policy,
	public, admin navigator.Options,
	logger zerolog.Logger,
) *WebHandler {
	l := logger.With().Str("module", "handler").Str("component", "web").Logger()
	return &WebHandler{recipes: recipes, ingredients: ingredients, policy: policy, public: public, admin: admin, log: l}
}

func (h *WebHandler) Register(r *gin.Engine) {
	r.GET(RecipesPagePath, h.recipeList)
	r.GET(IngredientsPagePath, h.ingredientList)
}

// listingView is the template data shared by listing pages.
type listingView[T any] struct {
	Title       string
	Path        string
	Search      string
	APIPrefix   string
	RecipesPath string
	Plan        navigator.RenderPlan[T]
}

type errorView struct {
	Title     string
	Message   string
	RequestID string
	Retry     string
	Plan      navigator.RenderPlan[struct{}]
}

func (h *WebHandler) recipeList(c *gin.Context) {
	f, err := recipeFilter(c)
	if err != nil {
		h.renderError(c, "Recipes", err)
		return
	}
	req := pagination.ParseRequest(c.Request.URL.Query(), h.policy)
	page, err := h.recipes.ListRecipes(c.Request.Context(), f, req)
	if err != nil {
		h.renderError(c, "Recipes", err)
		return
	}
	c.HTML(http.StatusOK, "recipes.html", listingView[model.Recipe]{
		Title:       "Recipes",
		Path:        RecipesPagePath,
		Search:      f.Search,
		APIPrefix:   APIV1Prefix,
		RecipesPath: RecipesPagePath,
		Plan:        navigator.Build(page, navigator.LocationOf(c.Request.URL), h.public),
	})
}

func (h *WebHandler) ingredientList(c *gin.Context) {
	search := c.Query(queryKeySearch)
	req := pagination.ParseRequest(c.Request.URL.Query(), h.policy)
	page, err := h.ingredients.ListIngredients(c.Request.Context(), search, req)
	if err != nil {
		h.renderError(c, "Ingredients", err)
		return
	}
	c.HTML(http.StatusOK, "ingredients.html", listingView[model.Ingredient]{
		Title:       "Ingredients",
		Path:        IngredientsPagePath,
		Search:      search,
		APIPrefix:   APIV1Prefix,
		RecipesPath: RecipesPagePath,
		Plan:        navigator.Build(page, navigator.LocationOf(c.Request.URL), h.admin),
	})
}

// renderError shows an empty listing with a retry link to the same URL.
func (h *WebHandler) renderError(c *gin.Context, title string, err error) {
	status, payload := response.MapError(err)
	msg := "Something went wrong while loading this page."
	switch status {
	case http.StatusBadRequest:
		msg = "Some of the filters are invalid."
	case http.StatusNotFound:
		msg = "Nothing was found at this address."
	}
	view := errorView{
		Title:     title,
		Message:   msg,
		RequestID: c.GetString(response.RequestIDKey),
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		view.Retry = c.Request.URL.RequestURI()
		h.log.Error().Err(err).Str("code", payload.Error).Str("path", c.Request.URL.Path).Msg("render listing failed")
	}
	c.HTML(status, "error.html", view)
}
