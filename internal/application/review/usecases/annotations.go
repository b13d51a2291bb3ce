package usecases

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/assetflow/assetflow/internal/application/review/dto"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/db"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type CreateAnnotationCommand struct {
	Token    string
	AssetID  uint
	Content  string
	Position json.RawMessage
}

type UpdateAnnotationCommand struct {
	Token        string
	AnnotationID uint
	Content      string
	// Position is kept as is when nil.
	Position json.RawMessage
}

// AnnotationsUseCase serves token scoped annotation CRUD. Every call
// resolves the token first and checks the asset against the invitation.
// Writes hold the invitation row lock so a concurrent cancel or completion
// cannot slip in between the token check and the write.
type AnnotationsUseCase struct {
	resolver    *Resolver
	annotations review.AnnotationRepository
	renderer    ContentRenderer
	txMgr       db.Transactor
	clock       biztime.Clock
	logger      logger.Interface
}

func NewAnnotationsUseCase(
	resolver *Resolver,
	annotations review.AnnotationRepository,
	renderer ContentRenderer,
	txMgr db.Transactor,
	clock biztime.Clock,
	log logger.Interface,
) *AnnotationsUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &AnnotationsUseCase{
		resolver:    resolver,
		annotations: annotations,
		renderer:    renderer,
		txMgr:       txMgr,
		clock:       clock,
		logger:      log,
	}
}

func (uc *AnnotationsUseCase) List(ctx context.Context, token string, assetID *uint) ([]dto.AnnotationDTO, error) {
	inv, err := uc.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, toAppError(err, "failed to load annotations")
	}
	if assetID != nil {
		if err := inv.CheckScope([]uint{*assetID}); err != nil {
			return nil, toAppError(err, "failed to load annotations")
		}
	}

	items, err := uc.annotations.ListByInvitation(ctx, inv.ID(), assetID)
	if err != nil {
		return nil, toAppError(err, "failed to load annotations")
	}
	out := make([]dto.AnnotationDTO, 0, len(items))
	for _, a := range items {
		out = append(out, uc.toDTO(ctx, a))
	}
	return out, nil
}

func (uc *AnnotationsUseCase) Create(ctx context.Context, cmd CreateAnnotationCommand) (*dto.AnnotationDTO, error) {
	var a *review.Annotation
	err := uc.withLiveInvitation(ctx, cmd.Token, func(txCtx context.Context, inv *review.Invitation) error {
		if err := inv.CheckScope([]uint{cmd.AssetID}); err != nil {
			return err
		}

		var err error
		a, err = review.NewAnnotation(inv.ID(), cmd.AssetID, inv.RecipientEmail(), uc.clean(cmd.Content), cmd.Position, uc.clock())
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		return uc.annotations.Create(txCtx, a)
	})
	if err != nil {
		return nil, toAppError(err, "failed to create annotation")
	}

	logger.FromContext(ctx, uc.logger).Debugw("annotation created", "invitation_id", a.InvitationID(), "asset_id", cmd.AssetID, "annotation_id", a.ID())
	out := uc.toDTO(ctx, a)
	return &out, nil
}

func (uc *AnnotationsUseCase) Update(ctx context.Context, cmd UpdateAnnotationCommand) (*dto.AnnotationDTO, error) {
	var a *review.Annotation
	err := uc.withLiveInvitation(ctx, cmd.Token, func(txCtx context.Context, inv *review.Invitation) error {
		var err error
		a, err = uc.annotations.GetByID(txCtx, inv.ID(), cmd.AnnotationID)
		if err != nil {
			return err
		}
		if err := inv.CheckScope([]uint{a.AssetID()}); err != nil {
			return err
		}
		if err := a.Edit(uc.clean(cmd.Content), cmd.Position, uc.clock()); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		return uc.annotations.Update(txCtx, a)
	})
	if err != nil {
		return nil, toAppError(err, "failed to update annotation")
	}
	out := uc.toDTO(ctx, a)
	return &out, nil
}

func (uc *AnnotationsUseCase) Delete(ctx context.Context, token string, annotationID uint) error {
	err := uc.withLiveInvitation(ctx, token, func(txCtx context.Context, inv *review.Invitation) error {
		a, err := uc.annotations.GetByID(txCtx, inv.ID(), annotationID)
		if err != nil {
			return err
		}
		if err := inv.CheckScope([]uint{a.AssetID()}); err != nil {
			return err
		}
		return uc.annotations.Delete(txCtx, inv.ID(), annotationID)
	})
	return toAppError(err, "failed to delete annotation")
}

// withLiveInvitation runs fn in a transaction holding the invitation row
// lock. A rejected token still commits so a lazy expiry flip is kept.
func (uc *AnnotationsUseCase) withLiveInvitation(ctx context.Context, token string, fn func(context.Context, *review.Invitation) error) error {
	var rejected error
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := uc.resolver.ResolveForUpdate(txCtx, token)
		if err != nil {
			if isTokenRejection(err) {
				rejected = err
				return nil
			}
			return err
		}
		return fn(txCtx, inv)
	})
	if err != nil {
		return err
	}
	return rejected
}

func (uc *AnnotationsUseCase) clean(content string) string {
	return uc.renderer.Sanitize(strings.TrimSpace(content))
}

func (uc *AnnotationsUseCase) toDTO(ctx context.Context, a *review.Annotation) dto.AnnotationDTO {
	html, err := uc.renderer.ToHTML(a.Content())
	if err != nil {
		logger.FromContext(ctx, uc.logger).Warnw("failed to render annotation", "annotation_id", a.ID(), "error", err)
		html = ""
	}
	return dto.AnnotationDTO{
		ID:          a.ID(),
		AssetID:     a.AssetID(),
		AuthorEmail: a.AuthorEmail(),
		Content:     a.Content(),
		ContentHTML: html,
		Position:    a.Position(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}
