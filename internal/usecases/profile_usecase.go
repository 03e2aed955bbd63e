package usecases

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/domain/repositories"
)

var avatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ProfileUsecase handles profile reads, edits and avatar uploads
type ProfileUsecase struct {
	userRepo repositories.UserRepository
	store    FileStore
}

// NewProfileUsecase creates a profile usecase
func NewProfileUsecase(userRepo repositories.UserRepository, store FileStore) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo, store: store}
}

// Get loads a user's profile
func (u *ProfileUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// Update applies partial profile edits for the authenticated user
func (u *ProfileUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.BadRequest("name cannot be empty")
		}
		user.Name = name
	}
	if input.AvatarURL != nil {
		user.AvatarURL = null.StringFrom(*input.AvatarURL)
	}
	if input.Bio != nil {
		user.Bio = null.StringFrom(*input.Bio)
	}

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// UploadAvatar stores an avatar image and records its public URL
func (u *ProfileUsecase) UploadAvatar(ctx context.Context, id uuid.UUID, fileHeader *multipart.FileHeader) (*entities.User, error) {
	if !avatarExtensions[fileExtension(fileHeader.Filename)] {
		return nil, domainerrors.BadRequest("unsupported image type")
	}

	name, err := u.store.Save(fileHeader)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = null.StringFrom("/api/v1/uploads/" + name)
	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}
