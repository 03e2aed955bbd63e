package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"glow-contrib.backend/internal/interfaces/http/response"
	"glow-contrib.backend/internal/usecases"
)

// ChainHandler handles blockchain status endpoints
type ChainHandler struct {
	chainUsecase *usecases.ChainUsecase
}

// NewChainHandler creates a new chain handler
func NewChainHandler(chainUsecase *usecases.ChainUsecase) *ChainHandler {
	return &ChainHandler{chainUsecase: chainUsecase}
}

// Status reports chain connectivity
// GET /api/v1/blockchain/status
func (h *ChainHandler) Status(c *gin.Context) {
	status, err := h.chainUsecase.Status(c.Request.Context())
	if err != nil {
		// The disconnected payload still goes out, with the 503
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// ContractInfo returns the deployed contract descriptor
// GET /api/v1/blockchain/contract-info
func (h *ChainHandler) ContractInfo(c *gin.Context) {
	info, err := h.chainUsecase.ContractInfo()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}
