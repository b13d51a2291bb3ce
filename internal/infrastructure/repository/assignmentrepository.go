package repository

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/mappers"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/db"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type AssignmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AllocationMapper
	logger logger.Interface
}

func NewAssignmentRepository(db *gorm.DB, log logger.Interface) *AssignmentRepositoryImpl {
	return &AssignmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewAllocationMapper(),
		logger: log,
	}
}

func (r *AssignmentRepositoryImpl) toModels(assignments []*allocation.Assignment) []*models.AssignmentModel {
	rows := make([]*models.AssignmentModel, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, r.mapper.AssignmentToModel(a))
	}
	return rows
}

func (r *AssignmentRepositoryImpl) toEntities(rows []*models.AssignmentModel) []*allocation.Assignment {
	out := make([]*allocation.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.mapper.AssignmentToEntity(row))
	}
	return out
}

// CreateBatch inserts all rows or none. A unique violation means another
// modeler holds the asset.
func (r *AssignmentRepositoryImpl) CreateBatch(ctx context.Context, assignments []*allocation.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	rows := r.toModels(assignments)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(&rows).Error; err != nil {
		if isDuplicateKey(err) {
			return allocation.ErrModelerSlotTaken
		}
		r.logger.Errorw("failed to create assignments", "count", len(rows), "error", err)
		return fmt.Errorf("failed to create assignments: %w", err)
	}
	for i, row := range rows {
		assignments[i].SetID(row.ID)
	}
	return nil
}

func (r *AssignmentRepositoryImpl) UpsertQA(ctx context.Context, assignments []*allocation.Assignment) (int64, error) {
	if len(assignments) == 0 {
		return 0, nil
	}
	rows := r.toModels(assignments)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "asset_id"},
			{Name: "user_id"},
			{Name: "role"},
		},
		DoNothing: true,
	}).Create(&rows)
	if result.Error != nil {
		r.logger.Errorw("failed to upsert QA assignments", "count", len(rows), "error", result.Error)
		return 0, fmt.Errorf("failed to upsert QA assignments: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *AssignmentRepositoryImpl) DeleteByAssets(ctx context.Context, assetIDs []uint, role allocation.Role) ([]uint, error) {
	if len(assetIDs) == 0 {
		return nil, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)
	scope := func(q *gorm.DB) *gorm.DB {
		return q.Where("asset_id IN ? AND role = ?", assetIDs, role.String())
	}

	listIDs, err := r.touchedLists(tx, scope)
	if err != nil {
		return nil, err
	}
	if err := tx.Scopes(scope).Delete(&models.AssignmentModel{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete %s assignments: %w", role, err)
	}
	return listIDs, nil
}

func (r *AssignmentRepositoryImpl) DeleteMatching(ctx context.Context, assetIDs, userIDs []uint, role allocation.Role) (int64, []uint, error) {
	if len(assetIDs) == 0 || len(userIDs) == 0 {
		return 0, nil, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)
	scope := func(q *gorm.DB) *gorm.DB {
		return q.Where("asset_id IN ? AND user_id IN ? AND role = ?", assetIDs, userIDs, role.String())
	}

	listIDs, err := r.touchedLists(tx, scope)
	if err != nil {
		return 0, nil, err
	}
	result := tx.Scopes(scope).Delete(&models.AssignmentModel{})
	if result.Error != nil {
		return 0, nil, fmt.Errorf("failed to delete assignments: %w", result.Error)
	}
	return result.RowsAffected, listIDs, nil
}

// touchedLists returns the distinct lists referenced by rows in scope.
func (r *AssignmentRepositoryImpl) touchedLists(tx *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]uint, error) {
	var listIDs []uint
	err := tx.Model(&models.AssignmentModel{}).
		Scopes(scope).
		Where("allocation_list_id IS NOT NULL").
		Distinct().
		Pluck("allocation_list_id", &listIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect allocation lists: %w", err)
	}
	return listIDs, nil
}

func (r *AssignmentRepositoryImpl) ListByListID(ctx context.Context, listID uint) ([]*allocation.Assignment, error) {
	var rows []*models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("allocation_list_id = ?", listID).Order("asset_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments of list %d: %w", listID, err)
	}
	return r.toEntities(rows), nil
}

func (r *AssignmentRepositoryImpl) ListByAssetIDs(ctx context.Context, assetIDs []uint) ([]*allocation.Assignment, error) {
	if len(assetIDs) == 0 {
		return []*allocation.Assignment{}, nil
	}
	var rows []*models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("asset_id IN ?", assetIDs).Order("asset_id ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return r.toEntities(rows), nil
}

type modelerCandidateRow struct {
	AssetID          uint
	AllocationListID uint
	UserID           uint
	QAPairingID      *uint
}

// ListQACandidates narrows to assets the QA user could possibly see, either
// through the modeler's pairing or through a QA row of their own, then loads
// every QA row on those assets so the caller can apply the override rule.
func (r *AssignmentRepositoryImpl) ListQACandidates(ctx context.Context, qaUserID uint) ([]allocation.QACandidate, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	ownQA := tx.Model(&models.AssignmentModel{}).
		Select("asset_id").
		Where("role = ? AND user_id = ?", allocation.RoleQA.String(), qaUserID)

	var modelers []modelerCandidateRow
	err := tx.Table(models.TableAssignments+" AS a").
		Select("a.asset_id, a.allocation_list_id, a.user_id, u.qa_pairing_id").
		Joins("LEFT JOIN "+models.TableUsers+" AS u ON u.id = a.user_id").
		Where("a.role = ? AND a.allocation_list_id IS NOT NULL", allocation.RoleModeler.String()).
		Where("u.qa_pairing_id = ? OR a.asset_id IN (?)", qaUserID, ownQA).
		Order("a.asset_id ASC").
		Scan(&modelers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list QA candidates: %w", err)
	}
	if len(modelers) == 0 {
		return []allocation.QACandidate{}, nil
	}

	assetIDs := make([]uint, 0, len(modelers))
	for _, m := range modelers {
		assetIDs = append(assetIDs, m.AssetID)
	}
	var qaRows []*models.AssignmentModel
	if err := tx.Where("asset_id IN ? AND role = ?", assetIDs, allocation.RoleQA.String()).
		Order("id ASC").Find(&qaRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load QA assignments: %w", err)
	}
	qaByAsset := make(map[uint][]*models.AssignmentModel, len(assetIDs))
	for _, row := range qaRows {
		qaByAsset[row.AssetID] = append(qaByAsset[row.AssetID], row)
	}

	out := make([]allocation.QACandidate, 0, len(modelers))
	for _, m := range modelers {
		c := allocation.QACandidate{
			AssetID:    m.AssetID,
			ListID:     m.AllocationListID,
			ModelerID:  m.UserID,
			PairedQAID: m.QAPairingID,
		}
		for _, q := range qaByAsset[m.AssetID] {
			if q.IsProvisional {
				c.ProvisionalQAIDs = append(c.ProvisionalQAIDs, q.UserID)
			} else {
				c.ExplicitQAIDs = append(c.ExplicitQAIDs, q.UserID)
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out, nil
}
