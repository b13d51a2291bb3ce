package mappers

import (
	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/infrastructure/persistence/models"
)

// AllocationMapper converts allocation lists and assignments.
type AllocationMapper interface {
	ListToEntity(model *models.AllocationListModel) *allocation.List
	ListToModel(list *allocation.List) *models.AllocationListModel

	AssignmentToEntity(model *models.AssignmentModel) *allocation.Assignment
	AssignmentToModel(a *allocation.Assignment) *models.AssignmentModel
}

type AllocationMapperImpl struct{}

func NewAllocationMapper() AllocationMapper {
	return &AllocationMapperImpl{}
}

func (m *AllocationMapperImpl) ListToEntity(model *models.AllocationListModel) *allocation.List {
	return allocation.ReconstructList(
		model.ID,
		model.Name,
		model.UserID,
		allocation.Role(model.Role),
		model.AssignedBy,
		model.Deadline,
		model.Bonus,
		model.CreatedAt,
	)
}

func (m *AllocationMapperImpl) ListToModel(list *allocation.List) *models.AllocationListModel {
	return &models.AllocationListModel{
		ID:         list.ID(),
		Name:       list.Name(),
		UserID:     list.UserID(),
		Role:       list.Role().String(),
		AssignedBy: list.AssignedBy(),
		Deadline:   list.Deadline(),
		Bonus:      list.Bonus(),
		CreatedAt:  list.CreatedAt(),
	}
}

func (m *AllocationMapperImpl) AssignmentToEntity(model *models.AssignmentModel) *allocation.Assignment {
	return allocation.ReconstructAssignment(
		model.ID,
		model.AssetID,
		model.UserID,
		allocation.Role(model.Role),
		model.AllocationListID,
		allocation.AssignmentStatus(model.Status),
		model.IsProvisional,
		model.Price,
		model.AssignedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// AssignmentToModel fills ModelerSlot for modeler rows so the unique index
// enforces one modeler per asset.
func (m *AllocationMapperImpl) AssignmentToModel(a *allocation.Assignment) *models.AssignmentModel {
	model := &models.AssignmentModel{
		ID:               a.ID(),
		AssetID:          a.AssetID(),
		UserID:           a.UserID(),
		Role:             a.Role().String(),
		AllocationListID: a.AllocationListID(),
		Status:           string(a.Status()),
		IsProvisional:    a.IsProvisional(),
		Price:            a.Price(),
		AssignedBy:       a.AssignedBy(),
		CreatedAt:        a.CreatedAt(),
		UpdatedAt:        a.UpdatedAt(),
	}
	if a.Role() == allocation.RoleModeler {
		slot := a.AssetID()
		model.ModelerSlot = &slot
	}
	return model
}
