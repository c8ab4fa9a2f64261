package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
	"github.com/maxviazov/recipe-catalog-service/internal/service"
	"github.com/maxviazov/recipe-catalog-service/pkg/response"
)

type IngredientHandler struct {
	svc    service.IngredientService
	policy pagination.Policy
	opts   navigator.Options
}

func NewIngredientHandler(svc service.IngredientService, policy pagination.Policy, opts navigator.Options) *IngredientHandler {
	return &IngredientHandler{svc: svc, policy: policy, opts: opts}
}

func (h *IngredientHandler) Register(r *gin.RouterGroup) {
	r.GET("/ingredients", h.list)
}

func (h *IngredientHandler) list(c *gin.Context) {
	req := pagination.ParseRequest(c.Request.URL.Query(), h.policy)
	page, err := h.svc.ListIngredients(c.Request.Context(), c.Query(queryKeySearch), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, navigator.NewListing(page, navigator.LocationOf(c.Request.URL), h.opts))
}
