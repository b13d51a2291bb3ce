package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/application/asset/dto"
)

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.StatusChangeResultDTO, error)
}

type BatchChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd BatchChangeStatusCommand) (*dto.BatchStatusResultDTO, error)
}

type GetStatusHistoryExecutor interface {
	Execute(ctx context.Context, query GetStatusHistoryQuery) (*GetStatusHistoryResult, error)
}
