package usecases

import (
	"context"
	"errors"

	"github.com/assetflow/assetflow/internal/application/review/dto"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/shared/authorization"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type CancelInvitationCommand struct {
	InvitationID  uint
	RequesterID   uint
	RequesterRole authorization.UserRole
}

type CancelInvitationUseCase struct {
	invitations review.InvitationRepository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewCancelInvitationUseCase(invitations review.InvitationRepository, clock biztime.Clock, log logger.Interface) *CancelInvitationUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &CancelInvitationUseCase{invitations: invitations, clock: clock, logger: log}
}

// Execute cancels a pending invitation. Only its creator or an admin may do so.
func (uc *CancelInvitationUseCase) Execute(ctx context.Context, cmd CancelInvitationCommand) (*dto.InvitationDTO, error) {
	log := logger.FromContext(ctx, uc.logger)

	inv, err := uc.invitations.GetByID(ctx, cmd.InvitationID)
	if err != nil {
		if errors.Is(err, review.ErrInvitationNotFound) {
			return nil, apperrors.NewNotFoundError("review invitation not found").WithCause(err)
		}
		return nil, apperrors.NewInternalError("failed to load review invitation").WithCause(err)
	}

	if !cmd.RequesterRole.IsAdmin() && inv.CreatedBy() != cmd.RequesterID {
		return nil, apperrors.NewForbiddenError("only the creator or an admin can cancel this review link")
	}

	now := uc.clock()
	if err := inv.Cancel(now); err != nil {
		return nil, toAppError(err, "failed to cancel review invitation")
	}

	updated, err := uc.invitations.MarkCancelled(ctx, inv.ID(), now)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to cancel review invitation").WithCause(err)
	}
	if !updated {
		// Someone finished or cancelled it between the read and the write.
		current, err := uc.invitations.GetByID(ctx, inv.ID())
		if err != nil {
			return nil, apperrors.NewInternalError("failed to load review invitation").WithCause(err)
		}
		if statusErr := current.Status().Err(); statusErr != nil {
			return nil, toAppError(statusErr, "failed to cancel review invitation")
		}
		return nil, apperrors.NewConflictError("review invitation changed concurrently, retry")
	}

	log.Infow("review invitation cancelled", "invitation_id", inv.ID(), "by", cmd.RequesterID)
	out := dto.ToInvitationDTO(inv)
	return &out, nil
}
