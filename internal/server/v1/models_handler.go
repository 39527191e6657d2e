package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/internal/server/validator"
	"github.com/nulzo/provider-metrics-api/pkg/api"
)

type queryParams struct {
	Q string `form:"q" binding:"required"`
}

// ListModels returns every model id in the store.
//
// GET /api/models
func (h *Handler) ListModels(c *gin.Context) {
	ids := h.service.ListModelIDs()

	c.JSON(http.StatusOK, api.ModelsResponse{
		Success:  true,
		Count:    len(ids),
		ModelIDs: ids,
	})
}

// SearchModels returns the model ids matching a case-insensitive substring.
// Zero matches is a valid answer (matches:null); a missing or blank q is a
// client error.
//
// GET /api/models/search?q=<string>
func (h *Handler) SearchModels(c *gin.Context) {
	var params queryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	matches := h.service.Search(params.Q)

	c.JSON(http.StatusOK, api.SearchResponse{
		Success: true,
		Count:   len(matches),
		Matches: matches,
	})
}

// GetProviders returns the stored provider sequence for an exact model id.
// An unknown id is success:true with providers:null, distinct from the
// missing-parameter client error.
//
// GET /api/get_providers?q=<model_id>
func (h *Handler) GetProviders(c *gin.Context) {
	var params queryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	providers, ok := h.service.Providers(params.Q)
	if !ok {
		providers = nil
	}

	c.JSON(http.StatusOK, api.ProvidersResponse{
		Success:   true,
		ModelID:   params.Q,
		Providers: providers,
	})
}
