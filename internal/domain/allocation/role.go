package allocation

import (
	"fmt"

	"github.com/assetflow/assetflow/internal/shared/authorization"
)

// Role is the responsibility an assignment grants.
type Role string

const (
	RoleModeler Role = "modeler"
	RoleQA      Role = "qa"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return r == RoleModeler || r == RoleQA
}

// UserRole is the platform role a user needs to hold this assignment role.
func (r Role) UserRole() authorization.UserRole {
	if r == RoleQA {
		return authorization.RoleQA
	}
	return authorization.RoleModeler
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid assignment role: %s", s)
	}
	return r, nil
}

type AssignmentStatus string

const (
	AssignmentPending  AssignmentStatus = "pending"
	AssignmentAccepted AssignmentStatus = "accepted"
)

func (s AssignmentStatus) IsValid() bool {
	return s == AssignmentPending || s == AssignmentAccepted
}
