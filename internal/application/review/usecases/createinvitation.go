package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/assetflow/assetflow/internal/application/common"
	"github.com/assetflow/assetflow/internal/application/review/dto"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/domain/shared"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

const maxInvitationAssets = 500

type CreateInvitationCommand struct {
	CreatedBy      uint
	RecipientEmail string
	AssetIDs       []uint
	// ExpiresInHours falls back to the configured default when zero.
	ExpiresInHours int
	Message        string
}

type CreateInvitationUseCase struct {
	invitations review.InvitationRepository
	assets      asset.Repository
	tokens      review.TokenGenerator
	renderer    ContentRenderer
	publisher   events.EventPublisher
	settings    Settings
	clock       biztime.Clock
	logger      logger.Interface
}

func NewCreateInvitationUseCase(
	invitations review.InvitationRepository,
	assets asset.Repository,
	tokens review.TokenGenerator,
	renderer ContentRenderer,
	publisher events.EventPublisher,
	settings Settings,
	clock biztime.Clock,
	log logger.Interface,
) *CreateInvitationUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &CreateInvitationUseCase{
		invitations: invitations,
		assets:      assets,
		tokens:      tokens,
		renderer:    renderer,
		publisher:   publisher,
		settings:    settings,
		clock:       clock,
		logger:      log,
	}
}

func (uc *CreateInvitationUseCase) Execute(ctx context.Context, cmd CreateInvitationCommand) (*dto.CreatedInvitationDTO, error) {
	log := logger.FromContext(ctx, uc.logger)

	ids := shared.UniqueIDs(cmd.AssetIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("assetIds must not be empty")
	}
	if len(ids) > maxInvitationAssets {
		return nil, apperrors.NewValidationError(fmt.Sprintf("a review link covers at most %d assets", maxInvitationAssets))
	}
	if cmd.ExpiresInHours < 0 {
		return nil, apperrors.NewValidationError("expiresInHours cannot be negative")
	}

	found, err := uc.assets.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load assets").WithCause(err)
	}
	if len(found) != len(ids) {
		return nil, apperrors.NewNotFoundError("asset not found", "every asset in a review link must exist")
	}

	plain, hash, err := uc.tokens.Generate()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate review token").WithCause(err)
	}

	now := uc.clock()
	message := uc.renderer.Sanitize(strings.TrimSpace(cmd.Message))
	inv, err := review.NewInvitation(hash, ids, cmd.CreatedBy, strings.TrimSpace(cmd.RecipientEmail), message, now.Add(uc.settings.ttl(cmd.ExpiresInHours)), now)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.invitations.Create(ctx, inv); err != nil {
		log.Errorw("failed to create review invitation", "created_by", cmd.CreatedBy, "error", err)
		return nil, apperrors.NewInternalError("failed to create review invitation").WithCause(err)
	}

	reviewURL := uc.settings.reviewURL(plain)
	common.PublishAll(uc.publisher, log, review.NewInvitationCreatedEvent(inv, reviewURL, now))

	log.Infow("review invitation created",
		"invitation_id", inv.ID(),
		"recipient", utils.MaskEmail(inv.RecipientEmail()),
		"assets", len(ids),
		"expires_at", inv.ExpiresAt(),
	)
	return &dto.CreatedInvitationDTO{
		InvitationDTO: dto.ToInvitationDTO(inv),
		Token:         plain,
		ReviewURL:     reviewURL,
	}, nil
}
