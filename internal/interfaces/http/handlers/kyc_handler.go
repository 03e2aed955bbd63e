package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/interfaces/http/middleware"
	"glow-contrib.backend/internal/interfaces/http/response"
	"glow-contrib.backend/internal/usecases"
)

// KYCHandler handles document verification endpoints
type KYCHandler struct {
	kycUsecase *usecases.KYCUsecase
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase *usecases.KYCUsecase) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase}
}

// UploadDocument stores an identity document for review
// POST /api/v1/kyc/upload  (multipart form: file, verifiedEmail?)
func (h *KYCHandler) UploadDocument(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("document file is required"))
		return
	}
	verifiedEmail := c.PostForm("verifiedEmail")

	doc, err := h.kycUsecase.UploadDocument(c.Request.Context(), userID, verifiedEmail, fileHeader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, doc)
}

// Status returns the authenticated user's document state
// GET /api/v1/kyc/status
func (h *KYCHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	doc, err := h.kycUsecase.Status(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, doc)
}

// AdminList returns documents awaiting review
// GET /api/v1/admin/kyc?status=Pending&page=1&limit=20
func (h *KYCHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	docs, meta, err := h.kycUsecase.AdminList(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"documents":  docs,
		"pagination": meta,
	})
}

// AdminApprove marks a document verified
// POST /api/v1/admin/kyc/:id/approve
func (h *KYCHandler) AdminApprove(c *gin.Context) {
	h.adminReview(c, true)
}

// AdminReject marks a document rejected
// POST /api/v1/admin/kyc/:id/reject
func (h *KYCHandler) AdminReject(c *gin.Context) {
	h.adminReview(c, false)
}

func (h *KYCHandler) adminReview(c *gin.Context, approve bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid document id"))
		return
	}

	doc, err := h.kycUsecase.AdminReview(c.Request.Context(), id, approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, doc)
}
