package usecases

import (
	"context"
	"errors"
	"mime/multipart"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/domain/repositories"
	"glow-contrib.backend/pkg/crypto"
	"glow-contrib.backend/pkg/logger"
	"glow-contrib.backend/pkg/redis"
	"glow-contrib.backend/pkg/utils"
)

var aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)

var kycDocumentExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// OTPVerifier stores and checks one-time codes
type OTPVerifier interface {
	Put(ctx context.Context, userID, code string) error
	Verify(ctx context.Context, userID, code string) error
}

// KYCUsecase handles the mock OTP identity flow and document review
type KYCUsecase struct {
	userRepo repositories.UserRepository
	docRepo  repositories.KycDocumentRepository
	otpStore OTPVerifier
	store    FileStore
	maxSize  int64
}

// NewKYCUsecase creates a KYC usecase
func NewKYCUsecase(userRepo repositories.UserRepository, docRepo repositories.KycDocumentRepository, otpStore OTPVerifier, store FileStore, maxSize int64) *KYCUsecase {
	return &KYCUsecase{
		userRepo: userRepo,
		docRepo:  docRepo,
		otpStore: otpStore,
		store:    store,
		maxSize:  maxSize,
	}
}

// StartOTP generates a one-time code for the mock Aadhaar flow. The code is
// kept in an expiring store and returned for the demo mailer to deliver; it
// never touches the user record.
func (u *KYCUsecase) StartOTP(ctx context.Context, userID uuid.UUID, aadhaar string) (string, error) {
	if !aadhaarPattern.MatchString(aadhaar) {
		return "", domainerrors.BadRequest("aadhaar must be 12 digits")
	}
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("user not found")
		}
		return "", domainerrors.InternalError(err)
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return "", domainerrors.InternalError(err)
	}
	if err := u.otpStore.Put(ctx, userID.String(), code); err != nil {
		return "", domainerrors.InternalError(err)
	}

	logger.Info(ctx, "kyc otp issued", zap.String("user_id", userID.String()))
	return code, nil
}

// VerifyOTP checks the submitted code and, on match, marks the user verified
// with the last four ID digits retained for display.
func (u *KYCUsecase) VerifyOTP(ctx context.Context, userID uuid.UUID, input *entities.KYCVerifyInput) (*entities.User, error) {
	if err := u.otpStore.Verify(ctx, userID.String(), input.OTP); err != nil {
		if errors.Is(err, redis.ErrOTPNotFound) {
			return nil, domainerrors.BadRequest("invalid or expired otp")
		}
		return nil, domainerrors.InternalError(err)
	}

	last4 := ""
	if aadhaarPattern.MatchString(input.Aadhaar) {
		last4 = input.Aadhaar[len(input.Aadhaar)-4:]
	}
	if err := u.userRepo.SetKYCVerified(ctx, userID, true, last4); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "kyc verified via otp", zap.String("user_id", userID.String()))
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// UploadDocument stores an identity document for admin review. A re-upload
// replaces the prior document and resets the user to unverified.
func (u *KYCUsecase) UploadDocument(ctx context.Context, userID uuid.UUID, verifiedEmail string, fileHeader *multipart.FileHeader) (*entities.KycDocument, error) {
	if fileHeader == nil {
		return nil, domainerrors.BadRequest("document file is required")
	}
	if !kycDocumentExtensions[fileExtension(fileHeader.Filename)] {
		return nil, domainerrors.BadRequest("document must be pdf, png or jpeg")
	}
	if u.maxSize > 0 && fileHeader.Size > u.maxSize {
		return nil, domainerrors.BadRequest("document exceeds the size limit")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	name, err := u.store.Save(fileHeader)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	doc := &entities.KycDocument{
		ID:            uuid.New(),
		UserID:        user.ID,
		FileName:      name,
		Status:        entities.KYCStatusPending,
		VerifiedEmail: verifiedEmail,
	}
	if err := u.docRepo.Upsert(ctx, doc); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	// A fresh document always restarts verification
	if err := u.userRepo.SetKYCVerified(ctx, userID, false, ""); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	doc.UserName = user.Name
	doc.UserEmail = user.Email
	return doc, nil
}

// Status reports the user's current document state
func (u *KYCUsecase) Status(ctx context.Context, userID uuid.UUID) (*entities.KycDocument, error) {
	doc, err := u.docRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("no kyc document on file")
		}
		return nil, domainerrors.InternalError(err)
	}
	return doc, nil
}

// AdminList returns a page of documents for review, optionally filtered by
// status
func (u *KYCUsecase) AdminList(ctx context.Context, status string, page, limit int) ([]*entities.KycDocument, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	docs, total, err := u.docRepo.List(ctx, status, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return docs, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// AdminReview applies an admin decision on a document. Approval marks the
// owner verified; rejection clears any prior verification.
func (u *KYCUsecase) AdminReview(ctx context.Context, docID uuid.UUID, approve bool) (*entities.KycDocument, error) {
	doc, err := u.docRepo.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("kyc document not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	status := entities.KYCStatusRejected
	if approve {
		status = entities.KYCStatusVerified
	}
	if err := u.docRepo.SetStatus(ctx, doc.ID, status); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if err := u.userRepo.SetKYCVerified(ctx, doc.UserID, approve, ""); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "kyc document reviewed",
		zap.String("document_id", doc.ID.String()),
		zap.String("status", string(status)),
	)
	doc.Status = status
	return doc, nil
}
