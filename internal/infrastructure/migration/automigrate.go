package migration

import (
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.AssetModel{},
		&models.StatusHistoryModel{},
		&models.AllocationListModel{},
		&models.AssignmentModel{},
		&models.ShareInvitationModel{},
		&models.ShareResponseModel{},
		&models.AnnotationModel{},
	}
}
