package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/mappers"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/db"
)

// AnnotationRepositoryImpl scopes every lookup by invitation so a token can
// never reach another review's notes.
type AnnotationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ReviewMapper
}

func NewAnnotationRepository(db *gorm.DB) *AnnotationRepositoryImpl {
	return &AnnotationRepositoryImpl{db: db, mapper: mappers.NewReviewMapper()}
}

func (r *AnnotationRepositoryImpl) Create(ctx context.Context, a *review.Annotation) error {
	model := r.mapper.AnnotationToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create annotation: %w", err)
	}
	a.SetID(model.ID)
	return nil
}

func (r *AnnotationRepositoryImpl) GetByID(ctx context.Context, invitationID, id uint) (*review.Annotation, error) {
	var model models.AnnotationModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ? AND invitation_id = ?", id, invitationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrAnnotationNotFound
		}
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}
	return r.mapper.AnnotationToEntity(&model), nil
}

func (r *AnnotationRepositoryImpl) Update(ctx context.Context, a *review.Annotation) error {
	model := r.mapper.AnnotationToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.AnnotationModel{}).
		Where("id = ? AND invitation_id = ?", model.ID, model.InvitationID).
		Updates(map[string]interface{}{
			"content":    model.Content,
			"position":   model.Position,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update annotation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return review.ErrAnnotationNotFound
	}
	return nil
}

func (r *AnnotationRepositoryImpl) Delete(ctx context.Context, invitationID, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Where("id = ? AND invitation_id = ?", id, invitationID).Delete(&models.AnnotationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete annotation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return review.ErrAnnotationNotFound
	}
	return nil
}

func (r *AnnotationRepositoryImpl) ListByInvitation(ctx context.Context, invitationID uint, assetID *uint) ([]*review.Annotation, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("invitation_id = ?", invitationID)
	if assetID != nil {
		query = query.Where("asset_id = ?", *assetID)
	}

	var rows []*models.AnnotationModel
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}

	out := make([]*review.Annotation, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.mapper.AnnotationToEntity(row))
	}
	return out, nil
}
