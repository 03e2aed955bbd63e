package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/pkg/logger"
)

// MarketplaceItem is a catalog entry. The marketplace is a mock: the catalog
// is static and purchases do not move real tokens.
type MarketplaceItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// PurchaseReceipt is the mock purchase confirmation
type PurchaseReceipt struct {
	ItemID  string  `json:"itemId"`
	Price   float64 `json:"price"`
	TxHash  string  `json:"txHash"`
	Message string  `json:"message"`
}

var marketplaceCatalog = []MarketplaceItem{
	{ID: "mk-001", Name: "Platform Hoodie", Description: "Embroidered zip hoodie", Price: 250, Category: "merch"},
	{ID: "mk-002", Name: "Sticker Pack", Description: "Die-cut vinyl stickers, set of 8", Price: 40, Category: "merch"},
	{ID: "mk-003", Name: "Pro Badge", Description: "Profile badge for one year", Price: 120, Category: "digital"},
	{ID: "mk-004", Name: "Workshop Seat", Description: "Seat at the next community workshop", Price: 300, Category: "event"},
}

// MarketplaceUsecase serves the mock reward marketplace
type MarketplaceUsecase struct{}

// NewMarketplaceUsecase creates a marketplace usecase
func NewMarketplaceUsecase() *MarketplaceUsecase {
	return &MarketplaceUsecase{}
}

// List returns the catalog
func (u *MarketplaceUsecase) List(ctx context.Context) []MarketplaceItem {
	return marketplaceCatalog
}

// Purchase records a mock purchase and returns a synthetic receipt
func (u *MarketplaceUsecase) Purchase(ctx context.Context, userID uuid.UUID, itemID string) (*PurchaseReceipt, error) {
	for _, item := range marketplaceCatalog {
		if item.ID == itemID {
			logger.Info(ctx, "mock marketplace purchase",
				zap.String("user_id", userID.String()),
				zap.String("item_id", itemID),
			)
			return &PurchaseReceipt{
				ItemID:  item.ID,
				Price:   item.Price,
				TxHash:  fmt.Sprintf("0xmock%s", uuid.New().String()[:8]),
				Message: "purchase recorded (mock)",
			}, nil
		}
	}
	return nil, domainerrors.NotFound("marketplace item not found")
}
