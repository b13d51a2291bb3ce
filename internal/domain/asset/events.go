package asset

import (
	"strconv"
	"time"

	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
)

const EventTypeStatusChanged = "asset.status_changed"

type StatusChangedEvent struct {
	events.BaseEvent
	AssetID        uint
	PreviousStatus vo.AssetStatus
	NewStatus      vo.AssetStatus
	ActionType     vo.ActionType
	ChangedBy      uint
	ActorRole      string
	RevisionNumber int
}

func NewStatusChangedEvent(entry *StatusHistoryEntry, at time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:      events.NewBaseEvent(EventTypeStatusChanged, strconv.FormatUint(uint64(entry.AssetID()), 10), at),
		AssetID:        entry.AssetID(),
		PreviousStatus: entry.PreviousStatus(),
		NewStatus:      entry.NewStatus(),
		ActionType:     entry.ActionType(),
		ChangedBy:      entry.ChangedBy(),
		ActorRole:      entry.ActorRole(),
		RevisionNumber: entry.RevisionNumber(),
	}
}
