package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/application/review/dto"
)

type CreateInvitationExecutor interface {
	Execute(ctx context.Context, cmd CreateInvitationCommand) (*dto.CreatedInvitationDTO, error)
}

type CancelInvitationExecutor interface {
	Execute(ctx context.Context, cmd CancelInvitationCommand) (*dto.InvitationDTO, error)
}

type GetReviewOverviewExecutor interface {
	Execute(ctx context.Context, token string) (*dto.ReviewOverviewDTO, error)
}

type SubmitResponsesExecutor interface {
	Execute(ctx context.Context, cmd SubmitResponsesCommand) (*dto.SubmitResultDTO, error)
}

// AnnotationManager is the token scoped annotation surface.
type AnnotationManager interface {
	List(ctx context.Context, token string, assetID *uint) ([]dto.AnnotationDTO, error)
	Create(ctx context.Context, cmd CreateAnnotationCommand) (*dto.AnnotationDTO, error)
	Update(ctx context.Context, cmd UpdateAnnotationCommand) (*dto.AnnotationDTO, error)
	Delete(ctx context.Context, token string, annotationID uint) error
}
