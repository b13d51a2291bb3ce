package mappers

import (
	"fmt"

	"github.com/assetflow/assetflow/internal/domain/user"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
	"github.com/assetflow/assetflow/internal/shared/authorization"
)

// UserToEntity rejects rows whose role is outside the closed role set.
func UserToEntity(model *models.UserModel) (*user.User, error) {
	role, ok := authorization.ParseUserRole(model.Role)
	if !ok {
		return nil, fmt.Errorf("user %d has unknown role %q", model.ID, model.Role)
	}
	return user.ReconstructUser(model.ID, model.Email, model.Name, role, model.QAPairingID), nil
}
