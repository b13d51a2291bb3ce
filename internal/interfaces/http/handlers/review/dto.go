package review

import (
	"encoding/json"

	"github.com/assetflow/assetflow/internal/application/review/usecases"
)

type CreateInvitationRequest struct {
	RecipientEmail string `json:"recipientEmail" binding:"required,email,max=255"`
	AssetIDs       []uint `json:"assetIds" binding:"required,min=1"`
	ExpiresInHours int    `json:"expiresInHours,omitempty" binding:"gte=0"`
	Message        string `json:"message,omitempty" binding:"max=2000"`
}

func (r *CreateInvitationRequest) ToCommand(createdBy uint) usecases.CreateInvitationCommand {
	return usecases.CreateInvitationCommand{
		CreatedBy:      createdBy,
		RecipientEmail: r.RecipientEmail,
		AssetIDs:       r.AssetIDs,
		ExpiresInHours: r.ExpiresInHours,
		Message:        r.Message,
	}
}

type ResponseItem struct {
	AssetID uint   `json:"assetId" binding:"required"`
	Action  string `json:"action" binding:"required,oneof=approve revision"`
	Comment string `json:"comment,omitempty"`
}

type SubmitRequest struct {
	Responses []ResponseItem `json:"responses" binding:"required,min=1,dive"`
}

func (r *SubmitRequest) ToCommand(token string) usecases.SubmitResponsesCommand {
	inputs := make([]usecases.ResponseInput, 0, len(r.Responses))
	for _, item := range r.Responses {
		inputs = append(inputs, usecases.ResponseInput{
			AssetID: item.AssetID,
			Action:  item.Action,
			Comment: item.Comment,
		})
	}
	return usecases.SubmitResponsesCommand{Token: token, Responses: inputs}
}

type CreateAnnotationRequest struct {
	AssetID  uint            `json:"assetId" binding:"required"`
	Content  string          `json:"content" binding:"required,max=10000"`
	Position json.RawMessage `json:"position,omitempty"`
}

type UpdateAnnotationRequest struct {
	Content  string          `json:"content" binding:"required,max=10000"`
	Position json.RawMessage `json:"position,omitempty"`
}
