package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/application/allocation/dto"
	"github.com/assetflow/assetflow/internal/application/common"
	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/shared"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/db"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type UnassignCommand struct {
	AssetIDs []uint
	UserIDs  []uint
	Role     allocation.Role
}

type UnassignUseCase struct {
	lists       allocation.ListRepository
	assignments allocation.AssignmentRepository
	txMgr       db.Transactor
	publisher   events.EventPublisher
	clock       biztime.Clock
	logger      logger.Interface
}

func NewUnassignUseCase(
	lists allocation.ListRepository,
	assignments allocation.AssignmentRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	clock biztime.Clock,
	log logger.Interface,
) *UnassignUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &UnassignUseCase{
		lists:       lists,
		assignments: assignments,
		txMgr:       txMgr,
		publisher:   publisher,
		clock:       clock,
		logger:      log,
	}
}

// Execute deletes the matching assignments, then removes any allocation list
// the deletion left empty.
func (uc *UnassignUseCase) Execute(ctx context.Context, cmd UnassignCommand) (*dto.UnassignResultDTO, error) {
	log := logger.FromContext(ctx, uc.logger)

	cmd.AssetIDs = shared.UniqueIDs(cmd.AssetIDs)
	cmd.UserIDs = shared.UniqueIDs(cmd.UserIDs)
	if len(cmd.AssetIDs) == 0 || len(cmd.UserIDs) == 0 {
		return nil, apperrors.NewValidationError("assetIds and userIds must not be empty")
	}
	if !cmd.Role.IsValid() {
		return nil, apperrors.NewValidationError("role must be modeler or qa")
	}

	var (
		removed int64
		touched []uint
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		removed, touched, err = uc.assignments.DeleteMatching(txCtx, cmd.AssetIDs, cmd.UserIDs, cmd.Role)
		return err
	})
	if err != nil {
		log.Errorw("unassign failed",
			"asset_ids", cmd.AssetIDs,
			"user_ids", cmd.UserIDs,
			"role", cmd.Role,
			"error", err,
		)
		return nil, apperrors.NewInternalError("failed to remove assignments").WithCause(err)
	}

	deleted := deleteOrphans(ctx, uc.lists, log, touched)

	if removed > 0 {
		common.PublishAll(uc.publisher, log,
			allocation.NewAssignmentsRemovedEvent(cmd.Role, cmd.AssetIDs, cmd.UserIDs, deleted, uc.clock()))
	}

	log.Infow("assignments removed",
		"role", cmd.Role,
		"removed", removed,
		"deleted_lists", deleted,
	)
	return &dto.UnassignResultDTO{Removed: removed, DeletedLists: deleted}, nil
}
