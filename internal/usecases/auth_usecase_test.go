package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/pkg/crypto"
	"glow-contrib.backend/pkg/jwt"
)

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
}

func TestAuthUsecase_RegisterNormalizesAndSigns(t *testing.T) {
	var created *entities.User
	userRepo := &userRepoStub{
		createFn: func(_ context.Context, u *entities.User) error {
			created = u
			return nil
		},
	}
	uc := NewAuthUsecase(userRepo, testJWTService())

	auth, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name:     "  Asha  ",
		Email:    "Asha@Example.COM",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)
	require.Equal(t, "Asha", auth.User.Name)
	require.Equal(t, "asha@example.com", auth.User.Email)
	require.Equal(t, entities.UserRoleUser, auth.User.Role)

	require.NotNil(t, created)
	require.NotEqual(t, "secret1", created.PasswordHash)
	require.True(t, crypto.CheckPassword("secret1", created.PasswordHash))

	claims, err := testJWTService().ValidateToken(auth.Token)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)
	require.Equal(t, "user", claims.Role)
}

func TestAuthUsecase_RegisterAdminRole(t *testing.T) {
	uc := NewAuthUsecase(&userRepoStub{}, testJWTService())
	auth, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "secret1",
		Role:     "admin",
	})
	require.NoError(t, err)
	require.Equal(t, entities.UserRoleAdmin, auth.User.Role)

	// Unknown roles fall back to the default
	auth, err = uc.Register(context.Background(), &entities.RegisterInput{
		Name:     "Odd",
		Email:    "odd@example.com",
		Password: "secret1",
		Role:     "superuser",
	})
	require.NoError(t, err)
	require.Equal(t, entities.UserRoleUser, auth.User.Role)
}

func TestAuthUsecase_RegisterDuplicateEmail(t *testing.T) {
	existing := testAuthor()
	userRepo := &userRepoStub{
		getByEmailFn: func(_ context.Context, _ string) (*entities.User, error) { return existing, nil },
	}
	uc := NewAuthUsecase(userRepo, testJWTService())

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name:     "Dup",
		Email:    existing.Email,
		Password: "secret1",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 409, appErr.Code)
}

func TestAuthUsecase_LoginSuccessAndFailure(t *testing.T) {
	hash, err := crypto.HashPassword("right-password")
	require.NoError(t, err)
	user := testAuthor()
	user.PasswordHash = hash

	userRepo := &userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*entities.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	uc := NewAuthUsecase(userRepo, testJWTService())

	auth, err := uc.Login(context.Background(), &entities.LoginInput{Email: user.Email, Password: "right-password"})
	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)

	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: user.Email, Password: "wrong"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 401, appErr.Code)

	// Unknown email yields the same opaque 401
	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "nobody@example.com", Password: "x"})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 401, appErr.Code)
}

func TestAuthUsecase_GetUserByID(t *testing.T) {
	user := testAuthor()
	userRepo := &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	uc := NewAuthUsecase(userRepo, testJWTService())

	got, err := uc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = uc.GetUserByID(context.Background(), uuid.New())
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 404, appErr.Code)
}
