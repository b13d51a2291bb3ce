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
	"github.com/assetflow/assetflow/internal/domain/shared"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/db"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// MaxBatchSize bounds a single batch status request.
const MaxBatchSize = 200

type BatchChangeStatusCommand struct {
	AssetIDs []uint
	Status   string
	Actor    asset.Actor
	Reason   string
	Comments string
}

// BatchChangeStatusUseCase applies one target status to many assets. Each
// asset commits on its own; failures are reported per item.
type BatchChangeStatusUseCase struct {
	assets    asset.Repository
	machine   *lifecycle.StateMachine
	guard     responsibility
	txMgr     db.Transactor
	publisher events.EventPublisher
	clock     biztime.Clock
	logger    logger.Interface
}

func NewBatchChangeStatusUseCase(
	assets asset.Repository,
	assignments allocation.AssignmentRepository,
	machine *lifecycle.StateMachine,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	clock biztime.Clock,
	log logger.Interface,
) *BatchChangeStatusUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &BatchChangeStatusUseCase{
		assets:    assets,
		machine:   machine,
		guard:     responsibility{assignments: assignments},
		txMgr:     txMgr,
		publisher: publisher,
		clock:     clock,
		logger:    log,
	}
}

func (uc *BatchChangeStatusUseCase) Execute(ctx context.Context, cmd BatchChangeStatusCommand) (*dto.BatchStatusResultDTO, error) {
	log := logger.FromContext(ctx, uc.logger)

	ids := shared.UniqueIDs(cmd.AssetIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("assetIds must not be empty")
	}
	if len(ids) > MaxBatchSize {
		return nil, apperrors.NewValidationError("too many assets in one batch")
	}
	target, err := vo.NewAssetStatus(strings.TrimSpace(cmd.Status))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid status", err.Error())
	}
	if cmd.Actor.External {
		return nil, apperrors.NewForbiddenError("external reviewers change status through their review link")
	}

	allowed, err := uc.guard.responsibleFor(ctx, cmd.Actor, ids)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check asset assignment").WithCause(err)
	}

	out := &dto.BatchStatusResultDTO{Results: make([]dto.BatchItemResultDTO, 0, len(ids))}
	var evts []events.DomainEvent

	for _, assetID := range ids {
		item := dto.BatchItemResultDTO{AssetID: assetID}
		if !allowed[assetID] {
			item.Error = "asset is not assigned to you"
			out.Results = append(out.Results, item)
			out.Failed++
			continue
		}

		var res lifecycle.TransitionResult
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			res, err = uc.machine.Transition(txCtx, assetID, lifecycle.TransitionCommand{
				Target:  target,
				Actor:   cmd.Actor,
				Details: asset.HistoryDetails{Reason: cmd.Reason, Comments: cmd.Comments},
			})
			return err
		})
		if err != nil {
			item.Error = apperrors.GetAppError(lifecycle.ToAppError(err)).Message
			out.Results = append(out.Results, item)
			out.Failed++
			log.Debugw("batch item rejected", "asset_id", assetID, "target", target, "error", err)
			continue
		}

		item.Success = true
		item.Status = res.Change.New.String()
		out.Results = append(out.Results, item)
		out.Succeeded++
		if res.Entry != nil {
			evts = append(evts, asset.NewStatusChangedEvent(res.Entry, uc.clock()))
		}
	}

	common.PublishAll(uc.publisher, log, evts...)

	log.Infow("batch status change finished",
		"target", target,
		"actor_id", cmd.Actor.UserID,
		"succeeded", out.Succeeded,
		"failed", out.Failed,
	)
	return out, nil
}
