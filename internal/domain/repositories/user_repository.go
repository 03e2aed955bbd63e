package repositories

import (
	"context"

	"github.com/google/uuid"
	"glow-contrib.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateProfile(ctx context.Context, user *entities.User) error
	AddBalance(ctx context.Context, id uuid.UUID, amount float64) error
	SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool, idLast4 string) error
}
