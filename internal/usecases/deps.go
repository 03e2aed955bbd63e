package usecases

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"glow-contrib.backend/internal/infrastructure/storage"
)

// FileStore abstracts local upload storage
type FileStore interface {
	Save(fileHeader *multipart.FileHeader) (string, error)
	Resolve(name string) (string, bool)
	Dir() string
}

// Pinner abstracts the IPFS pinning service
type Pinner interface {
	TestAuth(ctx context.Context) storage.AuthStatus
	Upload(ctx context.Context, path, name string) (*storage.PinResult, error)
}

// ChainAnchor abstracts the on-chain hash anchoring call
type ChainAnchor interface {
	AppendHash(ctx context.Context, cid string) (string, error)
}

// EventPublisher pushes fire-and-forget events to connected clients
type EventPublisher interface {
	Emit(event string, data interface{})
}

// ReviewLocker guards a contribution against concurrent review pipelines
type ReviewLocker interface {
	Acquire(ctx context.Context, contributionID string) (bool, error)
	Release(ctx context.Context, contributionID string) error
}

func fileExtension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
