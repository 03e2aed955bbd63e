package repositories

import (
	"context"

	"github.com/google/uuid"
	"glow-contrib.backend/internal/domain/entities"
)

// KycDocumentRepository defines KYC document data operations
type KycDocumentRepository interface {
	// Upsert creates the user's document record or replaces the existing
	// one's fields (one record per user).
	Upsert(ctx context.Context, doc *entities.KycDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.KycDocument, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.KycDocument, error)
	// List returns a page of documents plus the total count for the filter.
	// A non-positive limit returns everything.
	List(ctx context.Context, status string, limit, offset int) ([]*entities.KycDocument, int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus) error
}
