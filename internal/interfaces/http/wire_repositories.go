package http

import (
	"gorm.io/gorm"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/domain/user"
	"github.com/assetflow/assetflow/internal/infrastructure/repository"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

// repositories holds every repository the use cases are built from.
type repositories struct {
	userRepo       user.Repository
	assetRepo      asset.Repository
	historyRepo    asset.HistoryRepository
	listRepo       allocation.ListRepository
	assignmentRepo allocation.AssignmentRepository
	invitationRepo review.InvitationRepository
	responseRepo   review.ResponseRepository
	annotationRepo review.AnnotationRepository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:       repository.NewUserRepository(db),
		assetRepo:      repository.NewAssetRepository(db, log),
		historyRepo:    repository.NewStatusHistoryRepository(db),
		listRepo:       repository.NewAllocationListRepository(db, log),
		assignmentRepo: repository.NewAssignmentRepository(db, log),
		invitationRepo: repository.NewInvitationRepository(db, log),
		responseRepo:   repository.NewResponseRepository(db),
		annotationRepo: repository.NewAnnotationRepository(db),
	}
}
