package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/infrastructure/models"
)

// ContributionRepository implements contribution data operations
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Create creates a new contribution
func (r *ContributionRepository) Create(ctx context.Context, c *entities.Contribution) error {
	m := &models.Contribution{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		AuthorID:     c.AuthorID,
		FileName:     c.FileName.Ptr(),
		RewardAmount: c.RewardAmount,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a contribution with its author preloaded
func (r *ContributionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contribution, error) {
	var m models.Contribution
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return contributionToEntity(&m), nil
}

// ListLatest lists the most recent contributions, newest first
func (r *ContributionRepository) ListLatest(ctx context.Context, limit int) ([]*entities.Contribution, error) {
	var contribModels []models.Contribution
	query := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&contribModels).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Contribution, 0, len(contribModels))
	for i := range contribModels {
		items = append(items, contributionToEntity(&contribModels[i]))
	}
	return items, nil
}

// MarkReviewed transitions a contribution out of Pending, writing the review
// outcome fields. The WHERE status = 'Pending' guard makes the transition
// single-shot: a second review of the same row affects no rows.
func (r *ContributionRepository) MarkReviewed(ctx context.Context, c *entities.Contribution) error {
	updates := map[string]interface{}{
		"status":         string(c.Status),
		"reward_amount":  c.RewardAmount,
		"ipfs_cid":       c.IPFSCID.Ptr(),
		"ipfs_file_size": c.IPFSFileSize.Ptr(),
		"ipfs_pinned_at": c.IPFSPinnedAt.Ptr(),
		"tx_hash":        c.TxHash.Ptr(),
		"updated_at":     time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Contribution{}).
		Where("id = ? AND status = ?", c.ID, string(entities.ContributionPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Contribution{}).Where("id = ?", c.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrAlreadyReviewed
	}
	return nil
}

func contributionToEntity(m *models.Contribution) *entities.Contribution {
	c := &entities.Contribution{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		AuthorID:     m.AuthorID,
		FileName:     null.StringFromPtr(m.FileName),
		IPFSCID:      null.StringFromPtr(m.IPFSCID),
		IPFSFileSize: null.Int64FromPtr(m.IPFSFileSize),
		IPFSPinnedAt: null.StringFromPtr(m.IPFSPinnedAt),
		TxHash:       null.StringFromPtr(m.TxHash),
		RewardAmount: m.RewardAmount,
		Status:       entities.ContributionStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Author != nil {
		c.Author = userToEntity(m.Author)
	}
	return c
}
