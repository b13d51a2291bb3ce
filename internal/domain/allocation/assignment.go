package allocation

import (
	"fmt"
	"time"
)

// Assignment binds one user to one asset in a role.
type Assignment struct {
	id               uint
	assetID          uint
	userID           uint
	role             Role
	allocationListID *uint
	status           AssignmentStatus
	isProvisional    bool
	price            float64
	assignedBy       uint
	createdAt        time.Time
	updatedAt        time.Time
}

// NewModelerAssignment creates an accepted modeler assignment inside listID.
// Modelers have no acceptance handshake.
func NewModelerAssignment(assetID, userID, listID uint, price float64, assignedBy uint, now time.Time) (*Assignment, error) {
	if listID == 0 {
		return nil, fmt.Errorf("modeler assignment requires an allocation list")
	}
	return newAssignment(assetID, userID, RoleModeler, &listID, AssignmentAccepted, false, price, assignedBy, now)
}

// NewQAAssignment creates a pending QA assignment. QA rows are not bound to a
// list; provisional rows override the modeler's default QA pairing.
func NewQAAssignment(assetID, userID uint, provisional bool, price float64, assignedBy uint, now time.Time) (*Assignment, error) {
	return newAssignment(assetID, userID, RoleQA, nil, AssignmentPending, provisional, price, assignedBy, now)
}

func newAssignment(assetID, userID uint, role Role, listID *uint, status AssignmentStatus, provisional bool, price float64, assignedBy uint, now time.Time) (*Assignment, error) {
	if assetID == 0 || userID == 0 {
		return nil, fmt.Errorf("asset and user are required")
	}
	if price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	return &Assignment{
		assetID:          assetID,
		userID:           userID,
		role:             role,
		allocationListID: listID,
		status:           status,
		isProvisional:    provisional,
		price:            price,
		assignedBy:       assignedBy,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructAssignment(
	id, assetID, userID uint,
	role Role,
	allocationListID *uint,
	status AssignmentStatus,
	isProvisional bool,
	price float64,
	assignedBy uint,
	createdAt, updatedAt time.Time,
) *Assignment {
	return &Assignment{
		id:               id,
		assetID:          assetID,
		userID:           userID,
		role:             role,
		allocationListID: allocationListID,
		status:           status,
		isProvisional:    isProvisional,
		price:            price,
		assignedBy:       assignedBy,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (a *Assignment) ID() uint                 { return a.id }
func (a *Assignment) AssetID() uint            { return a.assetID }
func (a *Assignment) UserID() uint             { return a.userID }
func (a *Assignment) Role() Role               { return a.role }
func (a *Assignment) AllocationListID() *uint  { return a.allocationListID }
func (a *Assignment) Status() AssignmentStatus { return a.status }
func (a *Assignment) IsProvisional() bool      { return a.isProvisional }
func (a *Assignment) Price() float64           { return a.price }
func (a *Assignment) AssignedBy() uint         { return a.assignedBy }
func (a *Assignment) CreatedAt() time.Time     { return a.createdAt }
func (a *Assignment) UpdatedAt() time.Time     { return a.updatedAt }

func (a *Assignment) SetID(id uint) { a.id = id }
