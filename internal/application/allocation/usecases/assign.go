package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/assetflow/assetflow/internal/application/allocation/dto"
	"github.com/assetflow/assetflow/internal/application/common"
	"github.com/assetflow/assetflow/internal/application/lifecycle"
	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/asset"
	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/domain/shared"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/domain/user"
	"github.com/assetflow/assetflow/internal/shared/authorization"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	"github.com/assetflow/assetflow/internal/shared/db"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/id"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type PricingOptions struct {
	DefaultPrice *float64
}

type AssignCommand struct {
	AssetIDs []uint
	UserIDs  []uint
	Role     allocation.Role
	Deadline *time.Time
	Bonus    float64
	// Prices overrides the per-asset price; PricingOptions.DefaultPrice fills the rest.
	Prices        map[uint]float64
	Pricing       *PricingOptions
	ProvisionalQA *uint
	ListName      string
	AssignedBy    uint
}

type AssignUseCase struct {
	assets      asset.Repository
	lists       allocation.ListRepository
	assignments allocation.AssignmentRepository
	users       user.Repository
	machine     *lifecycle.StateMachine
	txMgr       db.Transactor
	publisher   events.EventPublisher
	clock       biztime.Clock
	logger      logger.Interface
}

func NewAssignUseCase(
	assets asset.Repository,
	lists allocation.ListRepository,
	assignments allocation.AssignmentRepository,
	users user.Repository,
	machine *lifecycle.StateMachine,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	clock biztime.Clock,
	log logger.Interface,
) *AssignUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &AssignUseCase{
		assets:      assets,
		lists:       lists,
		assignments: assignments,
		users:       users,
		machine:     machine,
		txMgr:       txMgr,
		publisher:   publisher,
		clock:       clock,
		logger:      log,
	}
}

func (uc *AssignUseCase) Execute(ctx context.Context, cmd AssignCommand) (*dto.AssignResultDTO, error) {
	log := logger.FromContext(ctx, uc.logger)

	cmd.AssetIDs = shared.UniqueIDs(cmd.AssetIDs)
	cmd.UserIDs = shared.UniqueIDs(cmd.UserIDs)
	if err := uc.validate(ctx, cmd); err != nil {
		return nil, err
	}

	if cmd.Role == allocation.RoleQA {
		return uc.assignQA(ctx, log, cmd)
	}
	return uc.assignModeler(ctx, log, cmd)
}

func (uc *AssignUseCase) validate(ctx context.Context, cmd AssignCommand) error {
	if len(cmd.AssetIDs) == 0 {
		return apperrors.NewValidationError("assetIds must not be empty")
	}
	if len(cmd.UserIDs) == 0 {
		return apperrors.NewValidationError("userIds must not be empty")
	}
	if !cmd.Role.IsValid() {
		return apperrors.NewValidationError("role must be modeler or qa")
	}
	if cmd.Bonus < 0 {
		return apperrors.NewValidationError("bonus cannot be negative")
	}
	for assetID, price := range cmd.Prices {
		if price < 0 {
			return apperrors.NewValidationError("price cannot be negative", fmt.Sprintf("asset %d", assetID))
		}
	}
	if cmd.Pricing != nil && cmd.Pricing.DefaultPrice != nil && *cmd.Pricing.DefaultPrice < 0 {
		return apperrors.NewValidationError("pricingOptions.defaultPrice cannot be negative")
	}
	if cmd.Role == allocation.RoleModeler && len(cmd.UserIDs) != 1 {
		return apperrors.NewValidationError("modeler assignment takes exactly one user",
			"an asset has at most one modeler")
	}
	if cmd.ProvisionalQA != nil && cmd.Role != allocation.RoleModeler {
		return apperrors.NewValidationError("provisionalQA is only accepted with role modeler")
	}

	wanted := map[uint]authorization.UserRole{}
	for _, uid := range cmd.UserIDs {
		wanted[uid] = cmd.Role.UserRole()
	}
	if cmd.ProvisionalQA != nil {
		wanted[*cmd.ProvisionalQA] = authorization.RoleQA
	}
	ids := make([]uint, 0, len(wanted))
	for uid := range wanted {
		ids = append(ids, uid)
	}

	found, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return apperrors.NewInternalError("failed to load users").WithCause(err)
	}
	byID := make(map[uint]*user.User, len(found))
	for _, u := range found {
		byID[u.ID()] = u
	}
	for uid, role := range wanted {
		u, ok := byID[uid]
		if !ok {
			return apperrors.NewNotFoundError("user not found", fmt.Sprintf("user %d", uid))
		}
		if u.Role() != role {
			return apperrors.NewValidationError("user does not hold the required role",
				fmt.Sprintf("user %d is %s, expected %s", uid, u.Role(), role))
		}
	}
	return nil
}

func (uc *AssignUseCase) priceFor(cmd AssignCommand, assetID uint) float64 {
	if p, ok := cmd.Prices[assetID]; ok {
		return p
	}
	if cmd.Pricing != nil && cmd.Pricing.DefaultPrice != nil {
		return *cmd.Pricing.DefaultPrice
	}
	return 0
}

func (uc *AssignUseCase) assignModeler(ctx context.Context, log logger.Interface, cmd AssignCommand) (*dto.AssignResultDTO, error) {
	now := uc.clock()
	modelerID := cmd.UserIDs[0]

	name := cmd.ListName
	if name == "" {
		generated, err := id.NewAllocationListName(now)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to generate allocation list name").WithCause(err)
		}
		name = generated
	}

	list, err := allocation.NewList(name, modelerID, allocation.RoleModeler, cmd.AssignedBy, cmd.Deadline, cmd.Bonus, now)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var (
		staleLists  []uint
		created     []*allocation.Assignment
		provisional []*allocation.Assignment
		transitions []lifecycle.TransitionResult
	)

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		staleLists, created, provisional, transitions = nil, nil, nil, nil

		locked, err := uc.assets.GetByIDsForUpdate(txCtx, cmd.AssetIDs)
		if err != nil {
			return fmt.Errorf("failed to lock assets: %w", err)
		}
		if missing := missingAssets(cmd.AssetIDs, locked); len(missing) > 0 {
			return apperrors.NewNotFoundError("asset not found", formatIDs(missing))
		}

		staleLists, err = uc.assignments.DeleteByAssets(txCtx, cmd.AssetIDs, allocation.RoleModeler)
		if err != nil {
			return fmt.Errorf("failed to remove previous modeler assignments: %w", err)
		}

		if err := uc.lists.Create(txCtx, list); err != nil {
			return fmt.Errorf("failed to create allocation list: %w", err)
		}

		for _, assetID := range cmd.AssetIDs {
			a, err := allocation.NewModelerAssignment(assetID, modelerID, list.ID(), uc.priceFor(cmd, assetID), cmd.AssignedBy, now)
			if err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			created = append(created, a)
		}
		if err := uc.assignments.CreateBatch(txCtx, created); err != nil {
			return fmt.Errorf("failed to create modeler assignments: %w", err)
		}

		if cmd.ProvisionalQA != nil {
			if _, err := uc.assignments.DeleteByAssets(txCtx, cmd.AssetIDs, allocation.RoleQA); err != nil {
				return fmt.Errorf("failed to clear QA assignments: %w", err)
			}
			for _, assetID := range cmd.AssetIDs {
				a, err := allocation.NewQAAssignment(assetID, *cmd.ProvisionalQA, true, 0, cmd.AssignedBy, now)
				if err != nil {
					return apperrors.NewValidationError(err.Error())
				}
				provisional = append(provisional, a)
			}
			if _, err := uc.assignments.UpsertQA(txCtx, provisional); err != nil {
				return fmt.Errorf("failed to create provisional QA assignments: %w", err)
			}
		}

		actor := asset.PlatformActor(cmd.AssignedBy, authorization.RoleAdmin)
		for _, a := range locked {
			if a.Status() != vo.StatusNotStarted {
				continue
			}
			res, err := uc.machine.Apply(txCtx, a, lifecycle.TransitionCommand{
				Target:  vo.StatusInProduction,
				Actor:   actor,
				Action:  vo.ActionAllocation,
				Details: asset.HistoryDetails{Reason: "allocated to " + list.Name()},
			})
			if err != nil {
				return err
			}
			transitions = append(transitions, res)
		}
		return nil
	})
	if err != nil {
		log.Errorw("modeler assignment failed",
			"asset_ids", cmd.AssetIDs,
			"user_id", modelerID,
			"error", err,
		)
		return nil, toAssignError(err)
	}

	// Lists emptied by the reassignment; the scheduled sweep catches misses.
	deleteOrphans(ctx, uc.lists, log, staleLists)

	evts := []events.DomainEvent{allocation.NewListCreatedEvent(list, cmd.AssetIDs, now)}
	if cmd.ProvisionalQA != nil {
		evts = append(evts, allocation.NewProvisionalQAAssignedEvent(*cmd.ProvisionalQA, cmd.AssetIDs, cmd.AssignedBy, now))
	}
	result := &dto.AssignResultDTO{
		AllocationLists:   []dto.AllocationListDTO{dto.ToAllocationListDTO(list, cmd.AssetIDs)},
		AssignmentDetails: dto.ToAssignmentDTOs(append(created, provisional...)),
		Inserted:          int64(len(created)),
	}
	for _, t := range transitions {
		if t.Entry == nil {
			continue
		}
		evts = append(evts, asset.NewStatusChangedEvent(t.Entry, now))
		result.StatusChanges = append(result.StatusChanges, dto.StatusChangeDTO{
			AssetID:        t.Change.AssetID,
			PreviousStatus: t.Change.Previous.String(),
			NewStatus:      t.Change.New.String(),
		})
	}
	common.PublishAll(uc.publisher, log, evts...)

	log.Infow("modeler assignment created",
		"list_id", list.ID(),
		"list_name", list.Name(),
		"user_id", modelerID,
		"assets", len(cmd.AssetIDs),
		"provisional_qa", cmd.ProvisionalQA,
	)
	return result, nil
}

func (uc *AssignUseCase) assignQA(ctx context.Context, log logger.Interface, cmd AssignCommand) (*dto.AssignResultDTO, error) {
	now := uc.clock()

	found, err := uc.assets.GetByIDs(ctx, cmd.AssetIDs)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load assets").WithCause(err)
	}
	if missing := missingAssets(cmd.AssetIDs, found); len(missing) > 0 {
		return nil, apperrors.NewNotFoundError("asset not found", formatIDs(missing))
	}

	rows := make([]*allocation.Assignment, 0, len(cmd.AssetIDs)*len(cmd.UserIDs))
	for _, uid := range cmd.UserIDs {
		for _, assetID := range cmd.AssetIDs {
			a, err := allocation.NewQAAssignment(assetID, uid, false, uc.priceFor(cmd, assetID), cmd.AssignedBy, now)
			if err != nil {
				return nil, apperrors.NewValidationError(err.Error())
			}
			rows = append(rows, a)
		}
	}

	inserted, err := uc.assignments.UpsertQA(ctx, rows)
	if err != nil {
		log.Errorw("QA assignment failed", "asset_ids", cmd.AssetIDs, "user_ids", cmd.UserIDs, "error", err)
		return nil, apperrors.NewInternalError("failed to assign QA").WithCause(err)
	}

	log.Infow("QA assignment upserted",
		"assets", len(cmd.AssetIDs),
		"users", len(cmd.UserIDs),
		"inserted", inserted,
		"skipped", int64(len(rows))-inserted,
	)
	return &dto.AssignResultDTO{
		AllocationLists:   []dto.AllocationListDTO{},
		AssignmentDetails: dto.ToAssignmentDTOs(rows),
		Inserted:          inserted,
	}, nil
}

// deleteOrphans is best-effort: a failure is logged and reported as zero.
func deleteOrphans(ctx context.Context, lists allocation.ListRepository, log logger.Interface, listIDs []uint) int64 {
	listIDs = shared.UniqueIDs(listIDs)
	if len(listIDs) == 0 {
		return 0
	}
	deleted, err := lists.DeleteIfOrphaned(ctx, listIDs)
	if err != nil {
		log.Warnw("allocation list cleanup failed", "list_ids", listIDs, "error", err)
		return 0
	}
	if deleted > 0 {
		log.Infow("orphaned allocation lists deleted", "list_ids", listIDs, "deleted", deleted)
	}
	return deleted
}

func missingAssets(ids []uint, found []*asset.Asset) []uint {
	seen := make(map[uint]struct{}, len(found))
	for _, a := range found {
		seen[a.ID()] = struct{}{}
	}
	var missing []uint
	for _, assetID := range ids {
		if _, ok := seen[assetID]; !ok {
			missing = append(missing, assetID)
		}
	}
	return missing
}

func formatIDs(ids []uint) string {
	return fmt.Sprintf("ids: %v", ids)
}

func toAssignError(err error) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, allocation.ErrModelerSlotTaken):
		return apperrors.NewConflictError("asset was assigned concurrently, retry").WithCause(err)
	case errors.Is(err, asset.ErrVersionConflict), errors.Is(err, asset.ErrInvalidTransition),
		errors.Is(err, asset.ErrTransitionNotPermitted):
		return lifecycle.ToAppError(err)
	default:
		return apperrors.NewInternalError("failed to assign assets").WithCause(err)
	}
}
