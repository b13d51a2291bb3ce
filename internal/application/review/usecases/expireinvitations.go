package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// ExpireInvitationsUseCase flips every overdue pending invitation in one
// statement. Resolve does the same lazily for a single token.
type ExpireInvitationsUseCase struct {
	invitations review.InvitationRepository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewExpireInvitationsUseCase(invitations review.InvitationRepository, clock biztime.Clock, log logger.Interface) *ExpireInvitationsUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &ExpireInvitationsUseCase{invitations: invitations, clock: clock, logger: log}
}

func (uc *ExpireInvitationsUseCase) Execute(ctx context.Context) (int64, error) {
	n, err := uc.invitations.ExpireOverdue(ctx, uc.clock())
	if err != nil {
		uc.logger.Errorw("invitation expiry sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		uc.logger.Infow("overdue invitations expired", "count", n)
	}
	return n, nil
}
