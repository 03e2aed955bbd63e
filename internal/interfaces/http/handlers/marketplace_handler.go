package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/interfaces/http/middleware"
	"glow-contrib.backend/internal/interfaces/http/response"
	"glow-contrib.backend/internal/usecases"
)

// MarketplaceHandler handles the mock reward marketplace
type MarketplaceHandler struct {
	marketUsecase *usecases.MarketplaceUsecase
}

// NewMarketplaceHandler creates a new marketplace handler
func NewMarketplaceHandler(marketUsecase *usecases.MarketplaceUsecase) *MarketplaceHandler {
	return &MarketplaceHandler{marketUsecase: marketUsecase}
}

// List returns the catalog
// GET /api/v1/marketplace
func (h *MarketplaceHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.marketUsecase.List(c.Request.Context()))
}

// Purchase records a mock purchase
// POST /api/v1/marketplace/:id/purchase
func (h *MarketplaceHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	receipt, err := h.marketUsecase.Purchase(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, receipt)
}
