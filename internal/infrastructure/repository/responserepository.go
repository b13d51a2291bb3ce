package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/mappers"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/db"
)

type ResponseRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ReviewMapper
}

func NewResponseRepository(db *gorm.DB) *ResponseRepositoryImpl {
	return &ResponseRepositoryImpl{db: db, mapper: mappers.NewReviewMapper()}
}

// Upsert keeps one row per (invitation, asset); a later decision replaces
// the action and comment but keeps the original created_at.
func (r *ResponseRepositoryImpl) Upsert(ctx context.Context, resp *review.Response) error {
	model := r.mapper.ResponseToModel(resp)
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "invitation_id"},
			{Name: "asset_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"action", "comment", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert share response: %w", err)
	}
	return nil
}

func (r *ResponseRepositoryImpl) ListByInvitation(ctx context.Context, invitationID uint) ([]*review.Response, error) {
	var rows []*models.ShareResponseModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("invitation_id = ?", invitationID).Order("asset_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list share responses: %w", err)
	}

	out := make([]*review.Response, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.mapper.ResponseToEntity(row))
	}
	return out, nil
}

func (r *ResponseRepositoryImpl) CountRespondedAssets(ctx context.Context, invitationID uint, assetIDs []uint) (int64, error) {
	if len(assetIDs) == 0 {
		return 0, nil
	}
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.ShareResponseModel{}).
		Where("invitation_id = ? AND asset_id IN ?", invitationID, assetIDs).
		Distinct("asset_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count share responses: %w", err)
	}
	return count, nil
}
