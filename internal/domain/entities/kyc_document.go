package entities

import (
	"time"

	"github.com/google/uuid"
)

// KYCStatus represents the review state of a KYC document
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "Pending"
	KYCStatusVerified KYCStatus = "Verified"
	KYCStatusRejected KYCStatus = "Rejected"
)

// KycDocument represents an identity document uploaded for verification.
// One per user; re-uploads replace the prior record's fields.
type KycDocument struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	FileName      string    `json:"-"`
	Status        KYCStatus `json:"status"`
	VerifiedEmail string    `json:"verifiedEmail"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}

// FileURL returns the public retrieval path for the stored document
func (d *KycDocument) FileURL() string {
	if d.FileName == "" {
		return ""
	}
	return "/api/v1/uploads/" + d.FileName
}

// KYCStartInput begins the mock OTP verification flow
type KYCStartInput struct {
	Aadhaar string `json:"aadhaar" binding:"required"`
}

// KYCVerifyInput completes the mock OTP verification flow
type KYCVerifyInput struct {
	OTP     string `json:"otp" binding:"required"`
	Aadhaar string `json:"aadhaar"`
}
