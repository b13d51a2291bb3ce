package models

import (
	"time"

	"gorm.io/datatypes"
)

// ShareInvitationModel is a tokenized external review link. Only the token
// hash is stored.
type ShareInvitationModel struct {
	ID             uint           `gorm:"primarykey"`
	TokenHash      string         `gorm:"uniqueIndex;not null;size:64"`
	AssetIDs       datatypes.JSON `gorm:"not null"`
	CreatedBy      uint           `gorm:"not null;index"`
	RecipientEmail string         `gorm:"not null;size:255"`
	Message        string         `gorm:"type:text"`
	ExpiresAt      time.Time      `gorm:"not null;index:idx_share_invitations_status_expires,priority:2"`
	Status         string         `gorm:"not null;size:20;default:pending;index:idx_share_invitations_status_expires,priority:1"`
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ShareInvitationModel) TableName() string {
	return TableShareInvitations
}

// ShareResponseModel is the latest decision per (invitation, asset).
type ShareResponseModel struct {
	ID           uint   `gorm:"primarykey"`
	InvitationID uint   `gorm:"not null;uniqueIndex:uk_share_response_invitation_asset,priority:1"`
	AssetID      uint   `gorm:"not null;uniqueIndex:uk_share_response_invitation_asset,priority:2"`
	Action       string `gorm:"not null;size:20"`
	Comment      string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ShareResponseModel) TableName() string {
	return TableShareResponses
}

// AnnotationModel is a reviewer note pinned to viewer coordinates.
type AnnotationModel struct {
	ID           uint           `gorm:"primarykey"`
	InvitationID uint           `gorm:"not null;index:idx_annotations_invitation_asset,priority:1"`
	AssetID      uint           `gorm:"not null;index:idx_annotations_invitation_asset,priority:2"`
	AuthorEmail  string         `gorm:"not null;size:255"`
	Content      string         `gorm:"type:text;not null"`
	Position     datatypes.JSON `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AnnotationModel) TableName() string {
	return TableAnnotations
}
