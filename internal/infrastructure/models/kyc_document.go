package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KycDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FileName      string    `gorm:"type:varchar(500);not null"`
	Status        string    `gorm:"type:varchar(50);not null;default:'Pending'"`
	VerifiedEmail *string   `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
}
