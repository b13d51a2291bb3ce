package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/application/allocation/dto"
)

type AssignExecutor interface {
	Execute(ctx context.Context, cmd AssignCommand) (*dto.AssignResultDTO, error)
}

type UnassignExecutor interface {
	Execute(ctx context.Context, cmd UnassignCommand) (*dto.UnassignResultDTO, error)
}

type ListQAAssetListsExecutor interface {
	Execute(ctx context.Context, query ListQAAssetListsQuery) ([]dto.QAAssetListDTO, error)
}

type GetAllocationListExecutor interface {
	Execute(ctx context.Context, query GetAllocationListQuery) (*dto.AllocationListDetailDTO, error)
}
