package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/mappers"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/db"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// orphanCondition is evaluated by the database at delete time, so a list that
// gains an assignment concurrently is never removed.
const orphanCondition = "NOT EXISTS (SELECT 1 FROM " + models.TableAssignments +
	" WHERE " + models.TableAssignments + ".allocation_list_id = " + models.TableAllocationLists + ".id)"

type AllocationListRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AllocationMapper
	logger logger.Interface
}

func NewAllocationListRepository(db *gorm.DB, log logger.Interface) *AllocationListRepositoryImpl {
	return &AllocationListRepositoryImpl{
		db:     db,
		mapper: mappers.NewAllocationMapper(),
		logger: log,
	}
}

func (r *AllocationListRepositoryImpl) Create(ctx context.Context, list *allocation.List) error {
	model := r.mapper.ListToModel(list)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create allocation list: %w", err)
	}
	list.SetID(model.ID)
	return nil
}

func (r *AllocationListRepositoryImpl) GetByID(ctx context.Context, id uint) (*allocation.List, error) {
	var model models.AllocationListModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, allocation.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get allocation list: %w", err)
	}
	return r.mapper.ListToEntity(&model), nil
}

func (r *AllocationListRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*allocation.List, error) {
	if len(ids) == 0 {
		return []*allocation.List{}, nil
	}
	var rows []*models.AllocationListModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get allocation lists: %w", err)
	}

	lists := make([]*allocation.List, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, r.mapper.ListToEntity(row))
	}
	return lists, nil
}

func (r *AllocationListRepositoryImpl) DeleteIfOrphaned(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Where("id IN ?", ids).Where(orphanCondition).Delete(&models.AllocationListModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned allocation lists: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *AllocationListRepositoryImpl) DeleteAllOrphaned(ctx context.Context) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Where(orphanCondition).Delete(&models.AllocationListModel{})
	if result.Error != nil {
		r.logger.Errorw("orphan list sweep failed", "error", result.Error)
		return 0, fmt.Errorf("failed to sweep orphaned allocation lists: %w", result.Error)
	}
	return result.RowsAffected, nil
}
