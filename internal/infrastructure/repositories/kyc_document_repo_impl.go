package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/infrastructure/models"
)

// KycDocumentRepository implements KYC document data operations
type KycDocumentRepository struct {
	db *gorm.DB
}

// NewKycDocumentRepository creates a new KYC document repository
func NewKycDocumentRepository(db *gorm.DB) *KycDocumentRepository {
	return &KycDocumentRepository{db: db}
}

// Upsert creates the user's document record or replaces the existing one's
// fields. One record per user; a re-upload resets status to Pending.
func (r *KycDocumentRepository) Upsert(ctx context.Context, doc *entities.KycDocument) error {
	var existing models.KycDocument
	err := r.db.WithContext(ctx).Where("user_id = ?", doc.UserID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := &models.KycDocument{
			ID:            doc.ID,
			UserID:        doc.UserID,
			FileName:      doc.FileName,
			Status:        string(doc.Status),
			VerifiedEmail: strPtrOrNil(doc.VerifiedEmail),
			CreatedAt:     doc.CreatedAt,
			UpdatedAt:     doc.UpdatedAt,
		}
		return r.db.WithContext(ctx).Create(m).Error
	}

	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Model(&models.KycDocument{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"file_name":      doc.FileName,
			"status":         string(doc.Status),
			"verified_email": strPtrOrNil(doc.VerifiedEmail),
			"updated_at":     time.Now(),
		}).Error
}

// GetByID gets a document by ID with the owning user preloaded
func (r *KycDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.KycDocument, error) {
	var m models.KycDocument
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return kycDocumentToEntity(&m), nil
}

// GetByUserID gets the user's document, if any
func (r *KycDocumentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.KycDocument, error) {
	var m models.KycDocument
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return kycDocumentToEntity(&m), nil
}

// List lists documents, newest first, optionally filtered by status. It
// returns the page plus the total count for the filter; a non-positive limit
// returns everything.
func (r *KycDocumentRepository) List(ctx context.Context, status string, limit, offset int) ([]*entities.KycDocument, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.KycDocument{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	var docModels []models.KycDocument
	if err := query.Find(&docModels).Error; err != nil {
		return nil, 0, err
	}

	docs := make([]*entities.KycDocument, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, kycDocumentToEntity(&docModels[i]))
	}
	return docs, total, nil
}

// SetStatus updates a document's review status
func (r *KycDocumentRepository) SetStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus) error {
	result := r.db.WithContext(ctx).Model(&models.KycDocument{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func kycDocumentToEntity(m *models.KycDocument) *entities.KycDocument {
	doc := &entities.KycDocument{
		ID:        m.ID,
		UserID:    m.UserID,
		FileName:  m.FileName,
		Status:    entities.KYCStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.VerifiedEmail != nil {
		doc.VerifiedEmail = *m.VerifiedEmail
	}
	if m.User != nil {
		doc.UserName = m.User.Name
		doc.UserEmail = m.User.Email
	}
	return doc
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
