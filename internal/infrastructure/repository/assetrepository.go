package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/mappers"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/db"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type AssetRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AssetMapper
	logger logger.Interface
}

func NewAssetRepository(db *gorm.DB, log logger.Interface) *AssetRepositoryImpl {
	return &AssetRepositoryImpl{
		db:     db,
		mapper: mappers.NewAssetMapper(),
		logger: log,
	}
}

func (r *AssetRepositoryImpl) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	var model models.AssetModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, asset.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *AssetRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*asset.Asset, error) {
	return r.getByIDs(db.GetTxFromContext(ctx, r.db), ids)
}

// GetByIDsForUpdate locks rows in id order so concurrent allocations of
// overlapping asset sets cannot deadlock each other.
func (r *AssetRepositoryImpl) GetByIDsForUpdate(ctx context.Context, ids []uint) ([]*asset.Asset, error) {
	tx := db.GetTxFromContext(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getByIDs(tx, ids)
}

func (r *AssetRepositoryImpl) getByIDs(tx *gorm.DB, ids []uint) ([]*asset.Asset, error) {
	if len(ids) == 0 {
		return []*asset.Asset{}, nil
	}
	var rows []*models.AssetModel
	if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

// Update persists status and revision count. The aggregate has already bumped
// its version, so the row must still carry the previous one.
func (r *AssetRepositoryImpl) Update(ctx context.Context, a *asset.Asset) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.AssetModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"revision_count": model.RevisionCount,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update asset", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: asset %d", asset.ErrVersionConflict, model.ID)
	}
	return nil
}
