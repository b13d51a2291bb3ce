package usecases

import (
	"context"
	"strings"

	"github.com/assetflow/assetflow/internal/application/asset/dto"
	"github.com/assetflow/assetflow/internal/application/common"
	"github.com/assetflow/assetflow/internal/application/lifecycle"
	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/asset"
	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/db"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type ChangeStatusCommand struct {
	AssetID  uint
	Status   string
	Actor    asset.Actor
	Reason   string
	Comments string
}

type ChangeStatusUseCase struct {
	assets    asset.Repository
	machine   *lifecycle.StateMachine
	guard     responsibility
	txMgr     db.Transactor
	publisher events.EventPublisher
	clock     biztime.Clock
	logger    logger.Interface
}

func NewChangeStatusUseCase(
	assets asset.Repository,
	assignments allocation.AssignmentRepository,
	machine *lifecycle.StateMachine,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	clock biztime.Clock,
	log logger.Interface,
) *ChangeStatusUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &ChangeStatusUseCase{
		assets:    assets,
		machine:   machine,
		guard:     responsibility{assignments: assignments},
		txMgr:     txMgr,
		publisher: publisher,
		clock:     clock,
		logger:    log,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.StatusChangeResultDTO, error) {
	log := logger.FromContext(ctx, uc.logger)

	target, err := vo.NewAssetStatus(strings.TrimSpace(cmd.Status))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid status", err.Error())
	}
	if cmd.Actor.External {
		return nil, apperrors.NewForbiddenError("external reviewers change status through their review link")
	}

	allowed, err := uc.guard.responsibleFor(ctx, cmd.Actor, []uint{cmd.AssetID})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check asset assignment").WithCause(err)
	}
	if !allowed[cmd.AssetID] {
		return nil, apperrors.NewForbiddenError("asset is not assigned to you")
	}

	var (
		result lifecycle.TransitionResult
		after  *asset.Asset
	)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.assets.GetByIDsForUpdate(txCtx, []uint{cmd.AssetID})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return asset.ErrAssetNotFound
		}
		after = locked[0]
		result, err = uc.machine.Apply(txCtx, after, lifecycle.TransitionCommand{
			Target:  target,
			Actor:   cmd.Actor,
			Details: asset.HistoryDetails{Reason: cmd.Reason, Comments: cmd.Comments},
		})
		return err
	})
	if err != nil {
		log.Warnw("status change rejected",
			"asset_id", cmd.AssetID,
			"target", target,
			"actor_id", cmd.Actor.UserID,
			"actor_role", cmd.Actor.Role,
			"error", err,
		)
		return nil, lifecycle.ToAppError(err)
	}

	if result.Entry != nil {
		common.PublishAll(uc.publisher, log, asset.NewStatusChangedEvent(result.Entry, uc.clock()))
	}

	return &dto.StatusChangeResultDTO{
		AssetID:        cmd.AssetID,
		PreviousStatus: result.Change.Previous.String(),
		NewStatus:      result.Change.New.String(),
		RevisionCount:  after.RevisionCount(),
		Changed:        result.Change.Changed,
	}, nil
}
