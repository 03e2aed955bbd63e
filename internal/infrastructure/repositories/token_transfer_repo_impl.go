package repositories

import (
	"context"

	"gorm.io/gorm"
	"glow-contrib.backend/internal/domain/entities"
	"glow-contrib.backend/internal/infrastructure/models"
)

// TokenTransferRepository implements the append-only transfer ledger
type TokenTransferRepository struct {
	db *gorm.DB
}

// NewTokenTransferRepository creates a new token transfer repository
func NewTokenTransferRepository(db *gorm.DB) *TokenTransferRepository {
	return &TokenTransferRepository{db: db}
}

// Create appends a transfer record
func (r *TokenTransferRepository) Create(ctx context.Context, transfer *entities.TokenTransfer) error {
	m := &models.TokenTransfer{
		ID:        transfer.ID,
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
		TxHash:    transfer.TxHash.Ptr(),
		CreatedAt: transfer.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}
