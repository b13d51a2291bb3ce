package models

import (
	"time"
)

// AllocationListModel groups the modeler assignments made in one allocation
// action. Lists are deleted once no assignment references them.
type AllocationListModel struct {
	ID         uint   `gorm:"primarykey"`
	Name       string `gorm:"not null;size:100"`
	UserID     uint   `gorm:"not null;index"`
	Role       string `gorm:"not null;size:20"`
	AssignedBy uint   `gorm:"not null"`
	Deadline   *time.Time
	Bonus      float64 `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

func (AllocationListModel) TableName() string {
	return TableAllocationLists
}

// AssignmentModel binds a user to an asset in a role.
//
// ModelerSlot is set to the asset ID on modeler rows and left NULL otherwise,
// so its unique index allows at most one modeler per asset while any number
// of QA rows coexist.
type AssignmentModel struct {
	ID               uint    `gorm:"primarykey"`
	AssetID          uint    `gorm:"not null;uniqueIndex:uk_assignment_asset_user_role,priority:1;index"`
	UserID           uint    `gorm:"not null;uniqueIndex:uk_assignment_asset_user_role,priority:2;index"`
	Role             string  `gorm:"not null;size:20;uniqueIndex:uk_assignment_asset_user_role,priority:3"`
	ModelerSlot      *uint   `gorm:"uniqueIndex:uk_assignment_modeler_slot"`
	AllocationListID *uint   `gorm:"index"`
	Status           string  `gorm:"not null;size:20"`
	IsProvisional    bool    `gorm:"not null;default:false"`
	Price            float64 `gorm:"not null;default:0"`
	AssignedBy       uint    `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (AssignmentModel) TableName() string {
	return TableAssignments
}

// UserModel is the slice of the platform user table this service reads.
type UserModel struct {
	ID          uint   `gorm:"primarykey"`
	Email       string `gorm:"uniqueIndex;not null;size:255"`
	Name        string `gorm:"not null;size:100"`
	Role        string `gorm:"not null;size:20;index"`
	QAPairingID *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserModel) TableName() string {
	return TableUsers
}
