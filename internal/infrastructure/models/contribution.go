package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contribution struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:text;not null"`
	AuthorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName     *string   `gorm:"type:varchar(500)"`
	IPFSCID      *string   `gorm:"column:ipfs_cid;type:varchar(128)"`
	IPFSFileSize *int64  `gorm:"column:ipfs_file_size"`
	IPFSPinnedAt *string `gorm:"column:ipfs_pinned_at;type:varchar(50)"`
	TxHash       *string `gorm:"type:varchar(80)"`
	RewardAmount float64 `gorm:"not null;default:0"`
	Status       string  `gorm:"type:varchar(50);not null;default:'Pending'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Author *User `gorm:"foreignKey:AuthorID"`
}
