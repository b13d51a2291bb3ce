package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// CleanupOrphanListsUseCase is the scheduled sweep that deletes every
// allocation list no assignment references.
type CleanupOrphanListsUseCase struct {
	lists  allocation.ListRepository
	logger logger.Interface
}

func NewCleanupOrphanListsUseCase(lists allocation.ListRepository, log logger.Interface) *CleanupOrphanListsUseCase {
	return &CleanupOrphanListsUseCase{lists: lists, logger: log}
}

func (uc *CleanupOrphanListsUseCase) Execute(ctx context.Context) (int64, error) {
	deleted, err := uc.lists.DeleteAllOrphaned(ctx)
	if err != nil {
		uc.logger.Errorw("orphan list sweep failed", "error", err)
		return 0, err
	}
	if deleted > 0 {
		uc.logger.Infow("orphan list sweep finished", "deleted", deleted)
	}
	return deleted, nil
}
