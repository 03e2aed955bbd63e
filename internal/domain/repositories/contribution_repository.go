package repositories

import (
	"context"

	"github.com/google/uuid"
	"glow-contrib.backend/internal/domain/entities"
)

// ContributionRepository defines contribution data operations
type ContributionRepository interface {
	Create(ctx context.Context, c *entities.Contribution) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Contribution, error)
	ListLatest(ctx context.Context, limit int) ([]*entities.Contribution, error)
	// MarkReviewed transitions a contribution out of Pending. It only touches
	// rows still in Pending; callers get ErrAlreadyReviewed otherwise, which
	// closes the double-accept hole.
	MarkReviewed(ctx context.Context, c *entities.Contribution) error
}
