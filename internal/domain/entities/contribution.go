package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContributionStatus represents the review state of a contribution
type ContributionStatus string

const (
	ContributionPending  ContributionStatus = "Pending"
	ContributionAccepted ContributionStatus = "Accepted"
	ContributionRejected ContributionStatus = "Rejected"
)

// ReviewAction is the admin decision on a pending contribution
type ReviewAction string

const (
	ReviewActionAccept ReviewAction = "accept"
	ReviewActionReject ReviewAction = "reject"
)

// Contribution represents a submitted piece of content
type Contribution struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	AuthorID     uuid.UUID          `json:"authorId"`
	Author       *User              `json:"author,omitempty"`
	FileName     null.String        `json:"fileName"`
	IPFSCID      null.String        `json:"ipfsCID"`
	IPFSFileSize null.Int64         `json:"ipfsFileSize"`
	IPFSPinnedAt null.String        `json:"ipfsPinTimestamp"`
	TxHash       null.String        `json:"txHash"`
	RewardAmount float64            `json:"rewardAmount"`
	Status       ContributionStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// FileURL returns the public retrieval path for the stored upload
func (c *Contribution) FileURL() string {
	if !c.FileName.Valid || c.FileName.String == "" {
		return ""
	}
	return "/api/v1/uploads/" + c.FileName.String
}

// ReviewInput represents the admin review request body
type ReviewInput struct {
	Action string `json:"action" binding:"required"`
}

// ReviewResult summarizes the outcome of a review
type ReviewResult struct {
	Status         ContributionStatus `json:"newStatus"`
	Message        string             `json:"message"`
	IPFSCID        string             `json:"ipfsHash,omitempty"`
	IPFSGatewayURL string             `json:"ipfsGatewayUrl,omitempty"`
	TxHash         string             `json:"txHash,omitempty"`
	RewardAmount   float64            `json:"rewardAmount"`
	UserBalance    float64            `json:"userBalance"`
	UploadedName   string             `json:"uploadedFileName,omitempty"`
	UploadedSize   int64              `json:"uploadedFileSize,omitempty"`
}
