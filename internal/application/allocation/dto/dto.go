package dto

import (
	"time"

	"github.com/assetflow/assetflow/internal/domain/allocation"
)

type AllocationListDTO struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	UserID     uint       `json:"userId"`
	Role       string     `json:"role"`
	AssignedBy uint       `json:"assignedBy"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Bonus      float64    `json:"bonus"`
	AssetIDs   []uint     `json:"assetIds"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type AssignmentDTO struct {
	ID               uint    `json:"id,omitempty"`
	AssetID          uint    `json:"assetId"`
	UserID           uint    `json:"userId"`
	Role             string  `json:"role"`
	AllocationListID *uint   `json:"allocationListId,omitempty"`
	Status           string  `json:"status"`
	IsProvisional    bool    `json:"isProvisional"`
	Price            float64 `json:"price"`
}

type StatusChangeDTO struct {
	AssetID        uint   `json:"assetId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

type AssignResultDTO struct {
	AllocationLists   []AllocationListDTO `json:"allocationLists"`
	AssignmentDetails []AssignmentDTO     `json:"assignmentDetails"`
	StatusChanges     []StatusChangeDTO   `json:"statusChanges,omitempty"`
	// Inserted is set for QA assignments; duplicates are skipped silently.
	Inserted int64 `json:"inserted"`
}

type UnassignResultDTO struct {
	Removed      int64 `json:"removed"`
	DeletedLists int64 `json:"deletedLists"`
}

type QAAssetListDTO struct {
	ListID              uint       `json:"listId"`
	Name                string     `json:"name"`
	ModelerID           uint       `json:"modelerId"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	Bonus               float64    `json:"bonus"`
	AssetIDs            []uint     `json:"assetIds"`
	ProvisionalAssetIDs []uint     `json:"provisionalAssetIds"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type AllocationListDetailDTO struct {
	AllocationListDTO
	Assignments []AssignmentDTO `json:"assignments"`
}

func ToAllocationListDTO(l *allocation.List, assetIDs []uint) AllocationListDTO {
	if assetIDs == nil {
		assetIDs = []uint{}
	}
	return AllocationListDTO{
		ID:         l.ID(),
		Name:       l.Name(),
		UserID:     l.UserID(),
		Role:       l.Role().String(),
		AssignedBy: l.AssignedBy(),
		Deadline:   l.Deadline(),
		Bonus:      l.Bonus(),
		AssetIDs:   assetIDs,
		CreatedAt:  l.CreatedAt(),
	}
}

func ToAssignmentDTO(a *allocation.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:               a.ID(),
		AssetID:          a.AssetID(),
		UserID:           a.UserID(),
		Role:             a.Role().String(),
		AllocationListID: a.AllocationListID(),
		Status:           string(a.Status()),
		IsProvisional:    a.IsProvisional(),
		Price:            a.Price(),
	}
}

func ToAssignmentDTOs(as []*allocation.Assignment) []AssignmentDTO {
	out := make([]AssignmentDTO, 0, len(as))
	for _, a := range as {
		out = append(out, ToAssignmentDTO(a))
	}
	return out
}
