// Package lifecycle applies asset status transitions and writes the matching
// ledger entries. Callers own the transaction.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/assetflow/assetflow/internal/domain/asset"
	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/shared/biztime"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type TransitionCommand struct {
	Target vo.AssetStatus
	Actor  asset.Actor
	// Action defaults to the actor role's usual action when empty.
	Action  vo.ActionType
	Details asset.HistoryDetails
}

type TransitionResult struct {
	Change asset.StatusChange
	// Entry is nil when the transition was a no-op.
	Entry *asset.StatusHistoryEntry
}

// StateMachine is the only writer of asset status and revision count.
type StateMachine struct {
	assets  asset.Repository
	history asset.HistoryRepository
	clock   biztime.Clock
	logger  logger.Interface
}

func NewStateMachine(
	assets asset.Repository,
	history asset.HistoryRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *StateMachine {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &StateMachine{
		assets:  assets,
		history: history,
		clock:   clock,
		logger:  logger,
	}
}

// Apply transitions an already loaded asset, persists it and appends the
// ledger entry. Run it inside a transaction so both writes land together.
func (sm *StateMachine) Apply(ctx context.Context, a *asset.Asset, cmd TransitionCommand) (TransitionResult, error) {
	now := sm.clock()

	change, err := a.Transition(cmd.Target, cmd.Actor, now)
	if err != nil {
		return TransitionResult{Change: change}, err
	}
	if !change.Changed {
		sm.logger.Debugw("status unchanged, skipping ledger", "asset_id", a.ID(), "status", a.Status())
		return TransitionResult{Change: change}, nil
	}

	action := cmd.Action
	if action == "" {
		action = vo.DefaultActionFor(cmd.Actor.Role)
	}

	entry, err := asset.NewStatusHistoryEntry(change, cmd.Actor, action, cmd.Details, now)
	if err != nil {
		return TransitionResult{Change: change}, err
	}

	if err := sm.assets.Update(ctx, a); err != nil {
		return TransitionResult{Change: change}, fmt.Errorf("failed to update asset %d: %w", a.ID(), err)
	}
	if err := sm.history.Append(ctx, entry); err != nil {
		return TransitionResult{Change: change}, fmt.Errorf("failed to append status history for asset %d: %w", a.ID(), err)
	}

	sm.logger.Infow("asset status changed",
		"asset_id", a.ID(),
		"from", change.Previous,
		"to", change.New,
		"revision_number", change.RevisionNumber,
		"actor_role", cmd.Actor.Role,
		"external", cmd.Actor.External,
	)

	return TransitionResult{Change: change, Entry: entry}, nil
}

// Transition loads the asset by ID and applies cmd.
func (sm *StateMachine) Transition(ctx context.Context, assetID uint, cmd TransitionCommand) (TransitionResult, error) {
	a, err := sm.assets.GetByID(ctx, assetID)
	if err != nil {
		return TransitionResult{}, err
	}
	return sm.Apply(ctx, a, cmd)
}

// ToAppError maps state machine failures onto API errors, keeping the cause.
func ToAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, asset.ErrAssetNotFound):
		return apperrors.NewNotFoundError("asset not found").WithCause(err)
	case errors.Is(err, asset.ErrInvalidTransition):
		return apperrors.NewConflictError("invalid status transition", err.Error()).WithCause(err)
	case errors.Is(err, asset.ErrTransitionNotPermitted):
		return apperrors.NewForbiddenError("status transition not permitted", err.Error()).WithCause(err)
	case errors.Is(err, asset.ErrInvalidStatus):
		return apperrors.NewValidationError("invalid asset status", err.Error()).WithCause(err)
	case errors.Is(err, asset.ErrVersionConflict):
		return apperrors.NewConflictError("asset was modified concurrently, retry").WithCause(err)
	default:
		return apperrors.NewInternalError("failed to change asset status").WithCause(err)
	}
}
