package models

import (
	"time"

	"github.com/google/uuid"
)

type TokenTransfer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sender    string    `gorm:"type:varchar(64);not null"`
	Recipient string    `gorm:"type:varchar(64);not null"`
	Amount    float64   `gorm:"not null"`
	TxHash    *string   `gorm:"type:varchar(80)"`
	CreatedAt time.Time
}
