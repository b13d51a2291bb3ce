package valueobjects

import (
	"fmt"

	"github.com/assetflow/assetflow/internal/shared/authorization"
)

// ActionType classifies what caused a status change in the history ledger.
type ActionType string

const (
	ActionAllocation    ActionType = "allocation"
	ActionStatusUpdate  ActionType = "status_update"
	ActionQAReview      ActionType = "qa_review"
	ActionClientReview  ActionType = "client_review"
	ActionAdminOverride ActionType = "admin_override"
)

var validActionTypes = map[ActionType]bool{
	ActionAllocation:    true,
	ActionStatusUpdate:  true,
	ActionQAReview:      true,
	ActionClientReview:  true,
	ActionAdminOverride: true,
}

func (a ActionType) String() string {
	return string(a)
}

func (a ActionType) IsValid() bool {
	return validActionTypes[a]
}

func NewActionType(s string) (ActionType, error) {
	at := ActionType(s)
	if !at.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return at, nil
}

// DefaultActionFor picks the ledger action for a transition requested by role.
func DefaultActionFor(role authorization.UserRole) ActionType {
	switch role {
	case authorization.RoleModeler:
		return ActionStatusUpdate
	case authorization.RoleQA:
		return ActionQAReview
	case authorization.RoleClient:
		return ActionClientReview
	default:
		return ActionAdminOverride
	}
}
