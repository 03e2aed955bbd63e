package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
)

func TestKycDocumentRepository_UpsertCreatesThenReplaces(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKycDocumentTable(t, db)
	userRepo := NewUserRepository(db)
	repo := NewKycDocumentRepository(db)
	ctx := context.Background()

	owner := seedAuthor(t, userRepo)
	doc := &entities.KycDocument{
		ID:       uuid.New(),
		UserID:   owner.ID,
		FileName: "id_front.png",
		Status:   entities.KYCStatusPending,
	}
	require.NoError(t, repo.Upsert(ctx, doc))

	got, err := repo.GetByUserID(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, "id_front.png", got.FileName)
	require.Equal(t, entities.KYCStatusPending, got.Status)
	require.Equal(t, owner.Name, got.UserName)

	// Second upload replaces the record instead of adding a new one
	replacement := &entities.KycDocument{
		ID:            uuid.New(),
		UserID:        owner.ID,
		FileName:      "id_back.pdf",
		Status:        entities.KYCStatusPending,
		VerifiedEmail: "owner@example.com",
	}
	require.NoError(t, repo.Upsert(ctx, replacement))
	require.Equal(t, got.ID, replacement.ID, "upsert keeps the original row id")

	all, total, err := repo.List(ctx, "", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, all, 1)
	require.Equal(t, "id_back.pdf", all[0].FileName)
	require.Equal(t, "owner@example.com", all[0].VerifiedEmail)
}

func TestKycDocumentRepository_SetStatusAndFilter(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKycDocumentTable(t, db)
	userRepo := NewUserRepository(db)
	repo := NewKycDocumentRepository(db)
	ctx := context.Background()

	owner := seedAuthor(t, userRepo)
	doc := &entities.KycDocument{
		ID:       uuid.New(),
		UserID:   owner.ID,
		FileName: "doc.pdf",
		Status:   entities.KYCStatusPending,
	}
	require.NoError(t, repo.Upsert(ctx, doc))

	require.NoError(t, repo.SetStatus(ctx, doc.ID, entities.KYCStatusVerified))

	verified, total, err := repo.List(ctx, string(entities.KYCStatusVerified), 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, verified, 1)

	pending, total, err := repo.List(ctx, string(entities.KYCStatusPending), 0, 0)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, pending)

	byID, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, entities.KYCStatusVerified, byID.Status)
}

func TestKycDocumentRepository_ListPaginates(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKycDocumentTable(t, db)
	userRepo := NewUserRepository(db)
	repo := NewKycDocumentRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		owner := seedAuthor(t, userRepo)
		doc := &entities.KycDocument{
			ID:       uuid.New(),
			UserID:   owner.ID,
			FileName: fmt.Sprintf("doc_%d.pdf", i),
			Status:   entities.KYCStatusPending,
		}
		require.NoError(t, repo.Upsert(ctx, doc))
	}

	page, total, err := repo.List(ctx, "", 2, 0)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page, 2)

	last, total, err := repo.List(ctx, "", 2, 4)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, last, 1)
}

func TestKycDocumentRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKycDocumentTable(t, db)
	repo := NewKycDocumentRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByUserID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.SetStatus(ctx, uuid.New(), entities.KYCStatusRejected)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTokenTransferRepository_Create(t *testing.T) {
	db := newTestDB(t)
	createTokenTransferTable(t, db)
	repo := NewTokenTransferRepository(db)
	ctx := context.Background()

	transfer := &entities.TokenTransfer{
		ID:        uuid.New(),
		Sender:    "0xabc",
		Recipient: "0xabc",
		Amount:    100.00,
	}
	require.NoError(t, repo.Create(ctx, transfer))

	var count int64
	require.NoError(t, db.Table("token_transfers").Count(&count).Error)
	require.EqualValues(t, 1, count)
}
