package usecases

import (
	"context"
	"errors"

	"github.com/assetflow/assetflow/internal/application/asset/dto"
	"github.com/assetflow/assetflow/internal/domain/asset"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type GetStatusHistoryQuery struct {
	AssetID  uint
	Page     int
	PageSize int
}

func (q GetStatusHistoryQuery) window() (offset, limit int) {
	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	return (page - 1) * size, size
}

type GetStatusHistoryResult struct {
	Entries []dto.StatusHistoryEntryDTO
	Total   int64
}

type GetStatusHistoryUseCase struct {
	assets  asset.Repository
	history asset.HistoryRepository
	logger  logger.Interface
}

func NewGetStatusHistoryUseCase(assets asset.Repository, history asset.HistoryRepository, log logger.Interface) *GetStatusHistoryUseCase {
	return &GetStatusHistoryUseCase{assets: assets, history: history, logger: log}
}

// Execute returns the ledger of one asset, oldest entry first.
func (uc *GetStatusHistoryUseCase) Execute(ctx context.Context, query GetStatusHistoryQuery) (*GetStatusHistoryResult, error) {
	if _, err := uc.assets.GetByID(ctx, query.AssetID); err != nil {
		if errors.Is(err, asset.ErrAssetNotFound) {
			return nil, apperrors.NewNotFoundError("asset not found")
		}
		return nil, apperrors.NewInternalError("failed to load asset").WithCause(err)
	}

	offset, limit := query.window()
	entries, total, err := uc.history.ListByAsset(ctx, query.AssetID, offset, limit)
	if err != nil {
		logger.FromContext(ctx, uc.logger).Errorw("failed to load status history", "asset_id", query.AssetID, "error", err)
		return nil, apperrors.NewInternalError("failed to load status history").WithCause(err)
	}

	return &GetStatusHistoryResult{
		Entries: dto.ToStatusHistoryEntryDTOs(entries),
		Total:   total,
	}, nil
}
