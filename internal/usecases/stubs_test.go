package usecases

import (
	"context"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/infrastructure/storage"
)

type userRepoStub struct {
	createFn        func(context.Context, *entities.User) error
	getByIDFn       func(context.Context, uuid.UUID) (*entities.User, error)
	getByEmailFn    func(context.Context, string) (*entities.User, error)
	updateProfileFn func(context.Context, *entities.User) error
	addBalanceFn    func(context.Context, uuid.UUID, float64) error
	setKYCFn        func(context.Context, uuid.UUID, bool, string) error
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}
func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, user *entities.User) error {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, user)
	}
	return nil
}
func (s *userRepoStub) AddBalance(ctx context.Context, id uuid.UUID, amount float64) error {
	if s.addBalanceFn != nil {
		return s.addBalanceFn(ctx, id, amount)
	}
	return nil
}
func (s *userRepoStub) SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool, last4 string) error {
	if s.setKYCFn != nil {
		return s.setKYCFn(ctx, id, verified, last4)
	}
	return nil
}

type contribRepoStub struct {
	createFn       func(context.Context, *entities.Contribution) error
	getByIDFn      func(context.Context, uuid.UUID) (*entities.Contribution, error)
	listLatestFn   func(context.Context, int) ([]*entities.Contribution, error)
	markReviewedFn func(context.Context, *entities.Contribution) error
}

func (s *contribRepoStub) Create(ctx context.Context, c *entities.Contribution) error {
	if s.createFn != nil {
		return s.createFn(ctx, c)
	}
	return nil
}
func (s *contribRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contribution, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *contribRepoStub) ListLatest(ctx context.Context, limit int) ([]*entities.Contribution, error) {
	if s.listLatestFn != nil {
		return s.listLatestFn(ctx, limit)
	}
	return nil, nil
}
func (s *contribRepoStub) MarkReviewed(ctx context.Context, c *entities.Contribution) error {
	if s.markReviewedFn != nil {
		return s.markReviewedFn(ctx, c)
	}
	return nil
}

type kycDocRepoStub struct {
	upsertFn      func(context.Context, *entities.KycDocument) error
	getByIDFn     func(context.Context, uuid.UUID) (*entities.KycDocument, error)
	getByUserIDFn func(context.Context, uuid.UUID) (*entities.KycDocument, error)
	listFn        func(context.Context, string, int, int) ([]*entities.KycDocument, int64, error)
	setStatusFn   func(context.Context, uuid.UUID, entities.KYCStatus) error
}

func (s *kycDocRepoStub) Upsert(ctx context.Context, doc *entities.KycDocument) error {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, doc)
	}
	return nil
}
func (s *kycDocRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.KycDocument, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *kycDocRepoStub) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.KycDocument, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *kycDocRepoStub) List(ctx context.Context, status string, limit, offset int) ([]*entities.KycDocument, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, status, limit, offset)
	}
	return nil, 0, nil
}
func (s *kycDocRepoStub) SetStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus) error {
	if s.setStatusFn != nil {
		return s.setStatusFn(ctx, id, status)
	}
	return nil
}

type transferRepoStub struct {
	createFn func(context.Context, *entities.TokenTransfer) error
}

func (s *transferRepoStub) Create(ctx context.Context, transfer *entities.TokenTransfer) error {
	if s.createFn != nil {
		return s.createFn(ctx, transfer)
	}
	return nil
}

type fileStoreStub struct {
	saveFn    func(*multipart.FileHeader) (string, error)
	resolveFn func(string) (string, bool)
	dir       string
}

func (s *fileStoreStub) Save(fh *multipart.FileHeader) (string, error) {
	if s.saveFn != nil {
		return s.saveFn(fh)
	}
	return fh.Filename, nil
}
func (s *fileStoreStub) Resolve(name string) (string, bool) {
	if s.resolveFn != nil {
		return s.resolveFn(name)
	}
	return "", false
}
func (s *fileStoreStub) Dir() string { return s.dir }

type pinnerStub struct {
	testAuthFn func(context.Context) storage.AuthStatus
	uploadFn   func(context.Context, string, string) (*storage.PinResult, error)
}

func (s *pinnerStub) TestAuth(ctx context.Context) storage.AuthStatus {
	if s.testAuthFn != nil {
		return s.testAuthFn(ctx)
	}
	return storage.AuthStatus{OK: true, Configured: true}
}
func (s *pinnerStub) Upload(ctx context.Context, path, name string) (*storage.PinResult, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, path, name)
	}
	return &storage.PinResult{CID: "QmStub", Size: 1, Name: name}, nil
}

type publisherStub struct {
	mu     sync.Mutex
	events []string
	data   []interface{}
}

func (s *publisherStub) Emit(event string, payload interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	s.data = append(s.data, payload)
}

func (s *publisherStub) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func (s *publisherStub) payloads() []interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]interface{}(nil), s.data...)
}

type lockStub struct {
	acquireFn func(context.Context, string) (bool, error)
	released  []string
}

func (s *lockStub) Acquire(ctx context.Context, id string) (bool, error) {
	if s.acquireFn != nil {
		return s.acquireFn(ctx, id)
	}
	return true, nil
}
func (s *lockStub) Release(ctx context.Context, id string) error {
	s.released = append(s.released, id)
	return nil
}

type otpStub struct {
	putFn    func(context.Context, string, string) error
	verifyFn func(context.Context, string, string) error
}

func (s *otpStub) Put(ctx context.Context, userID, code string) error {
	if s.putFn != nil {
		return s.putFn(ctx, userID, code)
	}
	return nil
}
func (s *otpStub) Verify(ctx context.Context, userID, code string) error {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, userID, code)
	}
	return nil
}
