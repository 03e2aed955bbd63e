package repositories

import (
	"context"

	"glow-contrib.backend/internal/domain/entities"
)

// TokenTransferRepository defines the append-only transfer ledger
type TokenTransferRepository interface {
	Create(ctx context.Context, transfer *entities.TokenTransfer) error
}
