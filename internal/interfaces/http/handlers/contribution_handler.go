package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/interfaces/http/middleware"
	"glow-contrib.backend/internal/interfaces/http/response"
	"glow-contrib.backend/internal/usecases"
)

// ContributionHandler handles contribution endpoints
type ContributionHandler struct {
	contribUsecase *usecases.ContributionUsecase
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(contribUsecase *usecases.ContributionUsecase) *ContributionHandler {
	return &ContributionHandler{contribUsecase: contribUsecase}
}

// List returns the latest contributions
// GET /api/v1/contributions
func (h *ContributionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.contribUsecase.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Create submits a new contribution with an optional attachment
// POST /api/v1/contributions  (multipart form: title, description, file?)
func (h *ContributionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")

	// Optional attachment
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader = nil
	}

	contribution, err := h.contribUsecase.Submit(c.Request.Context(), userID, title, description, fileHeader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, contribution)
}

// Get returns one contribution
// GET /api/v1/contributions/:id
func (h *ContributionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid contribution id"))
		return
	}

	contribution, err := h.contribUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, contribution)
}

// Review applies an admin accept or reject decision
// POST /api/v1/contributions/:id/review
func (h *ContributionHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid contribution id"))
		return
	}

	var input entities.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.contribUsecase.Review(c.Request.Context(), id, entities.ReviewAction(input.Action))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ClaimReward sends the reward for an accepted contribution on chain
// POST /api/v1/contributions/:id/claim-reward
func (h *ContributionHandler) ClaimReward(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid contribution id"))
		return
	}

	transfer, err := h.contribUsecase.ClaimReward(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, transfer)
}

// UploadAndAnchor pins a file to IPFS and optionally anchors its CID on chain
// POST /api/v1/ipfs/upload  (multipart form: file, skipChain?)
func (h *ContributionHandler) UploadAndAnchor(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file is required"))
		return
	}
	skipChain := c.PostForm("skipChain") == "true"

	result, err := h.contribUsecase.UploadAndAnchor(c.Request.Context(), fileHeader, skipChain)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// PinStatus reports whether the pinning service accepts our credentials
// GET /api/v1/ipfs/status
func (h *ContributionHandler) PinStatus(c *gin.Context) {
	status := h.contribUsecase.PinStatus(c.Request.Context())
	response.Success(c, http.StatusOK, status)
}
