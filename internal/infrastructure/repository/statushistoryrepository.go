package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/mappers"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/db"
)

// StatusHistoryRepositoryImpl is insert-only: the ledger has no update or
// delete path.
type StatusHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AssetMapper
}

func NewStatusHistoryRepository(db *gorm.DB) *StatusHistoryRepositoryImpl {
	return &StatusHistoryRepositoryImpl{db: db, mapper: mappers.NewAssetMapper()}
}

func (r *StatusHistoryRepositoryImpl) Append(ctx context.Context, entry *asset.StatusHistoryEntry) error {
	model := r.mapper.HistoryToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	entry.SetID(model.ID)
	return nil
}

// ListByAsset returns the newest entries first.
func (r *StatusHistoryRepositoryImpl) ListByAsset(ctx context.Context, assetID uint, offset, limit int) ([]*asset.StatusHistoryEntry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.StatusHistoryModel{}).Where("asset_id = ?", assetID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count status history: %w", err)
	}

	var rows []*models.StatusHistoryModel
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list status history: %w", err)
	}

	entries := make([]*asset.StatusHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, r.mapper.HistoryToEntity(row))
	}
	return entries, total, nil
}
