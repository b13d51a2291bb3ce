package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

// Resolver turns a plaintext review token into a live invitation.
type Resolver struct {
	invitations review.InvitationRepository
	tokens      review.TokenGenerator
	clock       biztime.Clock
	logger      logger.Interface
}

func NewResolver(invitations review.InvitationRepository, tokens review.TokenGenerator, clock biztime.Clock, log logger.Interface) *Resolver {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &Resolver{
		invitations: invitations,
		tokens:      tokens,
		clock:       clock,
		logger:      log,
	}
}

// Resolve loads the invitation behind token and checks it is still usable.
// A pending invitation found past its expiry is flipped to expired before
// ErrInvitationExpired is returned.
func (r *Resolver) Resolve(ctx context.Context, token string) (*review.Invitation, error) {
	return r.resolve(ctx, token, r.invitations.GetByTokenHash)
}

// ResolveForUpdate is Resolve with the invitation row locked. It must run
// inside a transaction.
func (r *Resolver) ResolveForUpdate(ctx context.Context, token string) (*review.Invitation, error) {
	return r.resolve(ctx, token, r.invitations.GetByTokenHashForUpdate)
}

func (r *Resolver) resolve(ctx context.Context, token string, load func(context.Context, string) (*review.Invitation, error)) (*review.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, review.ErrInvitationNotFound
	}

	inv, err := load(ctx, r.tokens.Hash(token))
	if err != nil {
		return nil, err
	}

	now := r.clock()
	if inv.IsPastExpiry(now) {
		log := logger.FromContext(ctx, r.logger)
		if _, err := r.invitations.MarkExpired(ctx, inv.ID(), now); err != nil {
			log.Warnw("failed to persist invitation expiry",
				"invitation_id", inv.ID(),
				"token", utils.MaskToken(token),
				"error", err,
			)
		}
		// IsPastExpiry only holds for pending invitations, so Expire cannot fail here.
		if err := inv.Expire(now); err != nil {
			log.Debugw("invitation expiry not applied in memory", "invitation_id", inv.ID(), "error", err)
		}
		return inv, review.ErrInvitationExpired
	}
	if err := inv.CheckUsable(now); err != nil {
		return inv, err
	}
	return inv, nil
}

// isTokenRejection reports whether err is one of the terminal token states.
func isTokenRejection(err error) bool {
	return errors.Is(err, review.ErrInvitationNotFound) ||
		errors.Is(err, review.ErrInvitationExpired) ||
		errors.Is(err, review.ErrInvitationCancelled) ||
		errors.Is(err, review.ErrInvitationCompleted)
}
