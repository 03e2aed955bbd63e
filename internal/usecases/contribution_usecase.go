package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/domain/repositories"
	"glow-contrib.backend/internal/infrastructure/storage"
	"glow-contrib.backend/pkg/logger"
)

const ipfsGatewayBase = "https://gateway.pinata.cloud/ipfs/"

// DefaultListLimit caps the contribution feed size
const DefaultListLimit = 20

var contributionExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".txt":  true,
	".md":   true,
}

// ContributionUsecase handles submission, listing and the admin review pipeline
type ContributionUsecase struct {
	contribRepo  repositories.ContributionRepository
	userRepo     repositories.UserRepository
	transferRepo repositories.TokenTransferRepository
	store        FileStore
	pinner       Pinner
	chain        *ChainUsecase
	publisher    EventPublisher
	lock         ReviewLocker
}

// NewContributionUsecase creates a contribution usecase
func NewContributionUsecase(
	contribRepo repositories.ContributionRepository,
	userRepo repositories.UserRepository,
	transferRepo repositories.TokenTransferRepository,
	store FileStore,
	pinner Pinner,
	chain *ChainUsecase,
	publisher EventPublisher,
	lock ReviewLocker,
) *ContributionUsecase {
	return &ContributionUsecase{
		contribRepo:  contribRepo,
		userRepo:     userRepo,
		transferRepo: transferRepo,
		store:        store,
		pinner:       pinner,
		chain:        chain,
		publisher:    publisher,
		lock:         lock,
	}
}

// Submit records a new contribution. The attachment is optional; files with
// an unsupported extension are silently dropped rather than rejected.
func (u *ContributionUsecase) Submit(ctx context.Context, authorID uuid.UUID, title, description string, fileHeader *multipart.FileHeader) (*entities.Contribution, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domainerrors.BadRequest("title is required")
	}

	author, err := u.userRepo.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	c := &entities.Contribution{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(description),
		AuthorID:    author.ID,
		Status:      entities.ContributionPending,
	}

	if fileHeader != nil {
		if contributionExtensions[fileExtension(fileHeader.Filename)] {
			name, err := u.store.Save(fileHeader)
			if err != nil {
				return nil, domainerrors.InternalError(err)
			}
			c.FileName = null.StringFrom(name)
		} else {
			logger.Warn(ctx, "dropping attachment with unsupported extension",
				zap.String("filename", fileHeader.Filename),
			)
		}
	}

	if err := u.contribRepo.Create(ctx, c); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	c.Author = author

	u.publisher.Emit(EventNewContribution, map[string]interface{}{
		"id":     c.ID.String(),
		"title":  c.Title,
		"author": author.Name,
	})
	return c, nil
}

// List returns the latest contributions, newest first
func (u *ContributionUsecase) List(ctx context.Context, limit int) ([]*entities.Contribution, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultListLimit
	}
	items, err := u.contribRepo.ListLatest(ctx, limit)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return items, nil
}

// Get loads one contribution
func (u *ContributionUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Contribution, error) {
	c, err := u.contribRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("contribution not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return c, nil
}

// Review applies an admin decision. Reject is a pure status change. Accept
// runs the full pipeline: pin the content to IPFS, best-effort anchor the CID
// on chain, persist the review and credit the author's reward.
func (u *ContributionUsecase) Review(ctx context.Context, id uuid.UUID, action entities.ReviewAction) (*entities.ReviewResult, error) {
	if action != entities.ReviewActionAccept && action != entities.ReviewActionReject {
		return nil, domainerrors.BadRequest("action must be accept or reject")
	}

	c, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != entities.ContributionPending {
		return nil, domainerrors.NewAppError(http.StatusConflict, "contribution already reviewed", domainerrors.ErrAlreadyReviewed)
	}

	if action == entities.ReviewActionReject {
		return u.reject(ctx, c)
	}
	return u.accept(ctx, c)
}

func (u *ContributionUsecase) reject(ctx context.Context, c *entities.Contribution) (*entities.ReviewResult, error) {
	c.Status = entities.ContributionRejected
	if err := u.contribRepo.MarkReviewed(ctx, c); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyReviewed) {
			return nil, domainerrors.NewAppError(http.StatusConflict, "contribution already reviewed", err)
		}
		return nil, domainerrors.InternalError(err)
	}

	u.publisher.Emit(EventContributionReviewed, map[string]interface{}{
		"id":     c.ID.String(),
		"userId": c.AuthorID.String(),
		"status": string(entities.ContributionRejected),
	})
	return &entities.ReviewResult{
		Status:  entities.ContributionRejected,
		Message: "contribution rejected",
	}, nil
}

func (u *ContributionUsecase) accept(ctx context.Context, c *entities.Contribution) (*entities.ReviewResult, error) {
	ok, err := u.lock.Acquire(ctx, c.ID.String())
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if !ok {
		return nil, domainerrors.NewAppError(http.StatusConflict, "review already in progress", domainerrors.ErrReviewInProgress)
	}
	defer func() {
		if err := u.lock.Release(context.WithoutCancel(ctx), c.ID.String()); err != nil {
			logger.Warn(ctx, "release review lock failed", zap.Error(err))
		}
	}()

	// Pinning must be possible before anything is mutated
	auth := u.pinner.TestAuth(ctx)
	if !auth.OK {
		logger.Error(ctx, "pinata auth check failed",
			zap.Bool("configured", auth.Configured),
			zap.String("reason", auth.Reason),
		)
		return nil, domainerrors.UpstreamError("pinning service unavailable", domainerrors.ErrPinAuthFailed)
	}

	path, name, cleanup, err := u.resolveContent(c)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	defer cleanup()

	pin, err := u.pinner.Upload(ctx, path, name)
	if err != nil {
		logger.Error(ctx, "pinata upload failed",
			zap.String("contribution_id", c.ID.String()),
			zap.Error(err),
		)
		return nil, domainerrors.UpstreamError("pinning service upload failed", fmt.Errorf("%w: %s", domainerrors.ErrPinUploadFailed, err))
	}

	// Best effort: a dead chain node must not block the accept
	txHash := ""
	if u.chain != nil && u.chain.Configured() {
		txHash, err = u.chain.AppendHash(ctx, pin.CID)
		if err != nil {
			logger.Warn(ctx, "chain anchor failed, accepting without tx",
				zap.String("contribution_id", c.ID.String()),
				zap.Error(err),
			)
			txHash = ""
		}
	}

	c.Status = entities.ContributionAccepted
	c.IPFSCID = null.StringFrom(pin.CID)
	c.IPFSFileSize = null.Int64From(pin.Size)
	c.IPFSPinnedAt = null.StringFrom(pin.Timestamp)
	if txHash != "" {
		c.TxHash = null.StringFrom(txHash)
	}
	c.RewardAmount = ContributionReward

	if err := u.contribRepo.MarkReviewed(ctx, c); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyReviewed) {
			return nil, domainerrors.NewAppError(http.StatusConflict, "contribution already reviewed", err)
		}
		return nil, domainerrors.InternalError(err)
	}

	if err := u.userRepo.AddBalance(ctx, c.AuthorID, ContributionReward); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	newBalance := ContributionReward
	if author, err := u.userRepo.GetByID(ctx, c.AuthorID); err == nil {
		newBalance = author.TokenBalance
	}

	u.publisher.Emit(EventContributionReviewed, map[string]interface{}{
		"id":           c.ID.String(),
		"userId":       c.AuthorID.String(),
		"status":       string(entities.ContributionAccepted),
		"ipfsHash":     pin.CID,
		"txHash":       txHash,
		"rewardAmount": ContributionReward,
		"newBalance":   newBalance,
	})

	return &entities.ReviewResult{
		Status:         entities.ContributionAccepted,
		Message:        "contribution accepted",
		IPFSCID:        pin.CID,
		IPFSGatewayURL: ipfsGatewayBase + pin.CID,
		TxHash:         txHash,
		RewardAmount:   ContributionReward,
		UserBalance:    newBalance,
		UploadedName:   pin.Name,
		UploadedSize:   pin.Size,
	}, nil
}

// resolveContent picks what gets pinned: the stored upload when present, or a
// synthesized text rendition of the contribution when there is no file.
func (u *ContributionUsecase) resolveContent(c *entities.Contribution) (path, name string, cleanup func(), err error) {
	cleanup = func() {}

	if c.FileName.Valid && c.FileName.String != "" {
		if p, ok := u.store.Resolve(c.FileName.String); ok {
			return p, c.FileName.String, cleanup, nil
		}
		// Stored name points at nothing on disk; fall through to placeholder
	}

	authorEmail := ""
	if c.Author != nil {
		authorEmail = c.Author.Email
	}
	content := fmt.Sprintf("Contribution: %s\nDescription: %s\nAuthor: %s", c.Title, c.Description, authorEmail)

	tmp, err := os.CreateTemp("", "contribution-*.txt")
	if err != nil {
		return "", "", cleanup, fmt.Errorf("create placeholder file: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", "", cleanup, fmt.Errorf("write placeholder file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", "", cleanup, err
	}

	placeholderName := storage.SanitizeFilename(c.Title) + ".txt"
	return tmp.Name(), placeholderName, func() { os.Remove(tmp.Name()) }, nil
}

// ClaimReward sends the accepted contribution's reward as an on-chain token
// transfer and records it in the transfer ledger.
func (u *ContributionUsecase) ClaimReward(ctx context.Context, id uuid.UUID) (*entities.TokenTransfer, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != entities.ContributionAccepted {
		return nil, domainerrors.BadRequest("contribution is not accepted")
	}
	if u.chain == nil || !u.chain.Configured() {
		return nil, domainerrors.UpstreamError("token transfer unavailable", domainerrors.ErrChainRPCFailed)
	}

	amount := c.RewardAmount
	if amount <= 0 {
		amount = 1.0
	}
	amountWei := new(big.Int).Mul(big.NewInt(int64(amount*100)), big.NewInt(1e16))

	txHash, sender, err := u.chain.TransferTokens(ctx, amountWei)
	if err != nil {
		logger.Error(ctx, "token transfer failed",
			zap.String("contribution_id", c.ID.String()),
			zap.Error(err),
		)
		return nil, domainerrors.UpstreamError("token transfer failed", err)
	}

	transfer := &entities.TokenTransfer{
		ID:        uuid.New(),
		Sender:    sender,
		Recipient: sender,
		Amount:    amount,
		TxHash:    null.StringFrom(txHash),
	}
	if err := u.transferRepo.Create(ctx, transfer); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	u.publisher.Emit(EventTokenTransferred, map[string]interface{}{
		"contributionId": c.ID.String(),
		"txHash":         txHash,
		"amount":         amount,
	})
	return transfer, nil
}

// UploadAndAnchor pins an uploaded file directly and optionally anchors its
// CID on chain. Unlike the review pipeline, a chain failure here is fatal.
func (u *ContributionUsecase) UploadAndAnchor(ctx context.Context, fileHeader *multipart.FileHeader, skipChain bool) (*entities.AnchorResult, error) {
	if fileHeader == nil {
		return nil, domainerrors.BadRequest("file is required")
	}

	name, err := u.store.Save(fileHeader)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	path, ok := u.store.Resolve(name)
	if !ok {
		return nil, domainerrors.InternalError(fmt.Errorf("stored file %s not found", name))
	}

	pin, err := u.pinner.Upload(ctx, path, name)
	if err != nil {
		return nil, domainerrors.UpstreamError("pinning service upload failed", fmt.Errorf("%w: %s", domainerrors.ErrPinUploadFailed, err))
	}

	result := &entities.AnchorResult{
		CID:            pin.CID,
		IPFSGatewayURL: ipfsGatewayBase + pin.CID,
		FileName:       name,
		Size:           pin.Size,
		ChainSkipped:   skipChain,
	}
	if skipChain {
		return result, nil
	}
	if u.chain == nil || !u.chain.Configured() {
		return nil, domainerrors.UpstreamError("chain anchor unavailable", domainerrors.ErrChainRPCFailed)
	}

	txHash, err := u.chain.AppendHash(ctx, pin.CID)
	if err != nil {
		return nil, domainerrors.UpstreamError("chain anchor failed", err)
	}
	result.TxHash = txHash
	return result, nil
}

// PinStatus reports whether the pinning service accepts our credentials
func (u *ContributionUsecase) PinStatus(ctx context.Context) storage.AuthStatus {
	return u.pinner.TestAuth(ctx)
}
