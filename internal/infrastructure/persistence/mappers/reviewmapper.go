package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
)

// ReviewMapper converts share invitations, responses and annotations.
type ReviewMapper interface {
	InvitationToEntity(model *models.ShareInvitationModel) (*review.Invitation, error)
	InvitationToModel(inv *review.Invitation) (*models.ShareInvitationModel, error)

	ResponseToEntity(model *models.ShareResponseModel) *review.Response
	ResponseToModel(resp *review.Response) *models.ShareResponseModel

	AnnotationToEntity(model *models.AnnotationModel) *review.Annotation
	AnnotationToModel(a *review.Annotation) *models.AnnotationModel
}

type ReviewMapperImpl struct{}

func NewReviewMapper() ReviewMapper {
	return &ReviewMapperImpl{}
}

func (m *ReviewMapperImpl) InvitationToEntity(model *models.ShareInvitationModel) (*review.Invitation, error) {
	var assetIDs []uint
	if len(model.AssetIDs) > 0 {
		if err := json.Unmarshal(model.AssetIDs, &assetIDs); err != nil {
			return nil, fmt.Errorf("failed to decode asset ids of invitation %d: %w", model.ID, err)
		}
	}
	return review.ReconstructInvitation(
		model.ID,
		model.TokenHash,
		assetIDs,
		model.CreatedBy,
		model.RecipientEmail,
		model.Message,
		model.ExpiresAt,
		review.InvitationStatus(model.Status),
		model.CompletedAt,
		model.CancelledAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ReviewMapperImpl) InvitationToModel(inv *review.Invitation) (*models.ShareInvitationModel, error) {
	assetIDs, err := json.Marshal(inv.AssetIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to encode asset ids: %w", err)
	}
	return &models.ShareInvitationModel{
		ID:             inv.ID(),
		TokenHash:      inv.TokenHash(),
		AssetIDs:       datatypes.JSON(assetIDs),
		CreatedBy:      inv.CreatedBy(),
		RecipientEmail: inv.RecipientEmail(),
		Message:        inv.Message(),
		ExpiresAt:      inv.ExpiresAt(),
		Status:         inv.Status().String(),
		CompletedAt:    inv.CompletedAt(),
		CancelledAt:    inv.CancelledAt(),
		CreatedAt:      inv.CreatedAt(),
		UpdatedAt:      inv.UpdatedAt(),
	}, nil
}

func (m *ReviewMapperImpl) ResponseToEntity(model *models.ShareResponseModel) *review.Response {
	return review.ReconstructResponse(
		model.InvitationID,
		model.AssetID,
		review.Action(model.Action),
		model.Comment,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ReviewMapperImpl) ResponseToModel(resp *review.Response) *models.ShareResponseModel {
	return &models.ShareResponseModel{
		InvitationID: resp.InvitationID(),
		AssetID:      resp.AssetID(),
		Action:       string(resp.Action()),
		Comment:      resp.Comment(),
		CreatedAt:    resp.CreatedAt(),
		UpdatedAt:    resp.UpdatedAt(),
	}
}

func (m *ReviewMapperImpl) AnnotationToEntity(model *models.AnnotationModel) *review.Annotation {
	return review.ReconstructAnnotation(
		model.ID,
		model.InvitationID,
		model.AssetID,
		model.AuthorEmail,
		model.Content,
		json.RawMessage(model.Position),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ReviewMapperImpl) AnnotationToModel(a *review.Annotation) *models.AnnotationModel {
	return &models.AnnotationModel{
		ID:           a.ID(),
		InvitationID: a.InvitationID(),
		AssetID:      a.AssetID(),
		AuthorEmail:  a.AuthorEmail(),
		Content:      a.Content(),
		Position:     datatypes.JSON(a.Position()),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}
