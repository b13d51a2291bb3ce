package dto

import (
	"encoding/json"
	"time"

	"github.com/assetflow/assetflow/internal/domain/review"
)

// InvitationDTO never carries the token or its hash.
type InvitationDTO struct {
	ID             uint       `json:"id"`
	AssetIDs       []uint     `json:"assetIds"`
	CreatedBy      uint       `json:"createdBy"`
	RecipientEmail string     `json:"recipientEmail"`
	Message        string     `json:"message,omitempty"`
	Status         string     `json:"status"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type CreatedInvitationDTO struct {
	InvitationDTO
	// Token is returned once and is not recoverable afterwards.
	Token     string `json:"token"`
	ReviewURL string `json:"reviewUrl"`
}

type ReviewAssetDTO struct {
	ID            uint         `json:"id"`
	Name          string       `json:"name"`
	Status        string       `json:"status"`
	RevisionCount int          `json:"revisionCount"`
	Client        string       `json:"client,omitempty"`
	DeliveryDate  *time.Time   `json:"deliveryDate,omitempty"`
	Response      *ResponseDTO `json:"response,omitempty"`
}

type ResponseDTO struct {
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewOverviewDTO struct {
	RecipientEmail string           `json:"recipientEmail"`
	Message        string           `json:"message,omitempty"`
	ExpiresAt      time.Time        `json:"expiresAt"`
	Assets         []ReviewAssetDTO `json:"assets"`
	Responded      int              `json:"responded"`
}

// SubmitItemDTO reports one decision. Recorded is true once the response is
// stored; Success additionally requires the status change to have applied.
type SubmitItemDTO struct {
	AssetID  uint   `json:"assetId"`
	Recorded bool   `json:"recorded"`
	Success  bool   `json:"success"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

type SubmitResultDTO struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Completed bool            `json:"completed"`
	Results   []SubmitItemDTO `json:"results"`
}

type AnnotationDTO struct {
	ID          uint            `json:"id"`
	AssetID     uint            `json:"assetId"`
	AuthorEmail string          `json:"authorEmail"`
	Content     string          `json:"content"`
	ContentHTML string          `json:"contentHtml"`
	Position    json.RawMessage `json:"position,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func ToInvitationDTO(inv *review.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:             inv.ID(),
		AssetIDs:       inv.AssetIDs(),
		CreatedBy:      inv.CreatedBy(),
		RecipientEmail: inv.RecipientEmail(),
		Message:        inv.Message(),
		Status:         inv.Status().String(),
		ExpiresAt:      inv.ExpiresAt(),
		CompletedAt:    inv.CompletedAt(),
		CancelledAt:    inv.CancelledAt(),
		CreatedAt:      inv.CreatedAt(),
	}
}

func ToResponseDTO(r *review.Response) *ResponseDTO {
	return &ResponseDTO{
		Action:    string(r.Action()),
		Comment:   r.Comment(),
		UpdatedAt: r.UpdatedAt(),
	}
}
