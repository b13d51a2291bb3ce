package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/mappers"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/db"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

type InvitationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ReviewMapper
	logger logger.Interface
}

func NewInvitationRepository(db *gorm.DB, log logger.Interface) *InvitationRepositoryImpl {
	return &InvitationRepositoryImpl{
		db:     db,
		mapper: mappers.NewReviewMapper(),
		logger: log,
	}
}

func (r *InvitationRepositoryImpl) Create(ctx context.Context, inv *review.Invitation) error {
	model, err := r.mapper.InvitationToModel(inv)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create share invitation: %w", err)
	}
	inv.SetID(model.ID)
	return nil
}

func (r *InvitationRepositoryImpl) GetByID(ctx context.Context, id uint) (*review.Invitation, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *InvitationRepositoryImpl) GetByTokenHash(ctx context.Context, tokenHash string) (*review.Invitation, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("token_hash = ?", tokenHash))
}

func (r *InvitationRepositoryImpl) GetByTokenHashForUpdate(ctx context.Context, tokenHash string) (*review.Invitation, error) {
	tx := db.GetTxFromContext(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(tx.Where("token_hash = ?", tokenHash))
}

func (r *InvitationRepositoryImpl) first(query *gorm.DB) (*review.Invitation, error) {
	var model models.ShareInvitationModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get share invitation: %w", err)
	}
	return r.mapper.InvitationToEntity(&model)
}

func (r *InvitationRepositoryImpl) MarkExpired(ctx context.Context, id uint, at time.Time) (bool, error) {
	return r.markPending(ctx, id, map[string]interface{}{
		"status":     review.InvitationExpired.String(),
		"updated_at": at,
	})
}

func (r *InvitationRepositoryImpl) MarkCompleted(ctx context.Context, id uint, at time.Time) (bool, error) {
	return r.markPending(ctx, id, map[string]interface{}{
		"status":       review.InvitationCompleted.String(),
		"completed_at": at,
		"updated_at":   at,
	})
}

func (r *InvitationRepositoryImpl) MarkCancelled(ctx context.Context, id uint, at time.Time) (bool, error) {
	return r.markPending(ctx, id, map[string]interface{}{
		"status":       review.InvitationCancelled.String(),
		"cancelled_at": at,
		"updated_at":   at,
	})
}

// markPending only touches rows that are still pending, so terminal states
// are never overwritten by a racing request.
func (r *InvitationRepositoryImpl) markPending(ctx context.Context, id uint, updates map[string]interface{}) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ShareInvitationModel{}).
		Where("id = ? AND status = ?", id, review.InvitationPending.String()).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update share invitation %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *InvitationRepositoryImpl) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ShareInvitationModel{}).
		Where("status = ? AND expires_at < ?", review.InvitationPending.String(), now).
		Updates(map[string]interface{}{
			"status":     review.InvitationExpired.String(),
			"updated_at": now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to expire overdue invitations", "error", result.Error)
		return 0, fmt.Errorf("failed to expire overdue invitations: %w", result.Error)
	}
	return result.RowsAffected, nil
}
