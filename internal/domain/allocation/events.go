package allocation

import (
	"strconv"
	"time"

	"github.com/assetflow/assetflow/internal/domain/shared/events"
)

const (
	EventTypeListCreated           = "allocation.list_created"
	EventTypeProvisionalQAAssigned = "allocation.provisional_qa_assigned"
	EventTypeAssignmentsRemoved    = "allocation.assignments_removed"
)

type ListCreatedEvent struct {
	events.BaseEvent
	ListID   uint
	ListName string
	UserID   uint
	AssetIDs []uint
	Deadline *time.Time
	Bonus    float64
}

func NewListCreatedEvent(list *List, assetIDs []uint, at time.Time) ListCreatedEvent {
	return ListCreatedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeListCreated, strconv.FormatUint(uint64(list.ID()), 10), at),
		ListID:    list.ID(),
		ListName:  list.Name(),
		UserID:    list.UserID(),
		AssetIDs:  assetIDs,
		Deadline:  list.Deadline(),
		Bonus:     list.Bonus(),
	}
}

type ProvisionalQAAssignedEvent struct {
	events.BaseEvent
	QAUserID   uint
	AssetIDs   []uint
	AssignedBy uint
}

func NewProvisionalQAAssignedEvent(qaUserID uint, assetIDs []uint, assignedBy uint, at time.Time) ProvisionalQAAssignedEvent {
	return ProvisionalQAAssignedEvent{
		BaseEvent:  events.NewBaseEvent(EventTypeProvisionalQAAssigned, strconv.FormatUint(uint64(qaUserID), 10), at),
		QAUserID:   qaUserID,
		AssetIDs:   assetIDs,
		AssignedBy: assignedBy,
	}
}

type AssignmentsRemovedEvent struct {
	events.BaseEvent
	Role         Role
	AssetIDs     []uint
	UserIDs      []uint
	DeletedLists int64
}

func NewAssignmentsRemovedEvent(role Role, assetIDs, userIDs []uint, deletedLists int64, at time.Time) AssignmentsRemovedEvent {
	return AssignmentsRemovedEvent{
		BaseEvent:    events.NewBaseEvent(EventTypeAssignmentsRemoved, string(role), at),
		Role:         role,
		AssetIDs:     assetIDs,
		UserIDs:      userIDs,
		DeletedLists: deletedLists,
	}
}
