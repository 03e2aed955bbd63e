package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TokenTransfer is an append-only ledger record of a reward transfer.
// Written on claim, never queried back by any workflow.
type TokenTransfer struct {
	ID        uuid.UUID   `json:"id"`
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	Amount    float64     `json:"amount"`
	TxHash    null.String `json:"txHash"`
	CreatedAt time.Time   `json:"createdAt"`
}
