package usecases

import (
	"context"
	"errors"

	"github.com/assetflow/assetflow/internal/application/allocation/dto"
	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/shared/authorization"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type GetAllocationListQuery struct {
	ListID        uint
	RequesterID   uint
	RequesterRole authorization.UserRole
}

type GetAllocationListUseCase struct {
	lists       allocation.ListRepository
	assignments allocation.AssignmentRepository
	logger      logger.Interface
}

func NewGetAllocationListUseCase(
	lists allocation.ListRepository,
	assignments allocation.AssignmentRepository,
	log logger.Interface,
) *GetAllocationListUseCase {
	return &GetAllocationListUseCase{
		lists:       lists,
		assignments: assignments,
		logger:      log,
	}
}

// Execute returns the list with its surviving assignments. Only admins and the
// list owner may read it.
func (uc *GetAllocationListUseCase) Execute(ctx context.Context, query GetAllocationListQuery) (*dto.AllocationListDetailDTO, error) {
	list, err := uc.lists.GetByID(ctx, query.ListID)
	if err != nil {
		if errors.Is(err, allocation.ErrListNotFound) {
			return nil, apperrors.NewNotFoundError("allocation list not found").WithCause(err)
		}
		return nil, apperrors.NewInternalError("failed to load allocation list").WithCause(err)
	}

	if !query.RequesterRole.IsAdmin() && list.UserID() != query.RequesterID {
		return nil, apperrors.NewForbiddenError("access denied to this allocation list")
	}

	assignments, err := uc.assignments.ListByListID(ctx, list.ID())
	if err != nil {
		logger.FromContext(ctx, uc.logger).Errorw("failed to load list assignments", "list_id", list.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to load allocation list").WithCause(err)
	}

	assetIDs := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		assetIDs = append(assetIDs, a.AssetID())
	}
	return &dto.AllocationListDetailDTO{
		AllocationListDTO: dto.ToAllocationListDTO(list, assetIDs),
		Assignments:       dto.ToAssignmentDTOs(assignments),
	}, nil
}
