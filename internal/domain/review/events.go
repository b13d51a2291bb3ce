package review

import (
	"strconv"
	"time"

	"github.com/assetflow/assetflow/internal/domain/shared/events"
)

const (
	EventTypeInvitationCreated = "review.invitation_created"
	EventTypeReviewSubmitted   = "review.submitted"
	EventTypeReviewCompleted   = "review.completed"
)

func aggregateID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// InvitationCreatedEvent carries the review URL so the recipient can be
// mailed. It lives only in memory.
type InvitationCreatedEvent struct {
	events.BaseEvent
	InvitationID   uint
	CreatedBy      uint
	RecipientEmail string
	Message        string
	ReviewURL      string
	AssetCount     int
	ExpiresAt      time.Time
}

func NewInvitationCreatedEvent(inv *Invitation, reviewURL string, at time.Time) InvitationCreatedEvent {
	return InvitationCreatedEvent{
		BaseEvent:      events.NewBaseEvent(EventTypeInvitationCreated, aggregateID(inv.ID()), at),
		InvitationID:   inv.ID(),
		CreatedBy:      inv.CreatedBy(),
		RecipientEmail: inv.RecipientEmail(),
		Message:        inv.Message(),
		ReviewURL:      reviewURL,
		AssetCount:     len(inv.assetIDs),
		ExpiresAt:      inv.ExpiresAt(),
	}
}

type ReviewSubmittedEvent struct {
	events.BaseEvent
	InvitationID   uint
	CreatedBy      uint
	RecipientEmail string
	Approved       []uint
	Revisions      []uint
	Failed         []uint
}

func NewReviewSubmittedEvent(inv *Invitation, approved, revisions, failed []uint, at time.Time) ReviewSubmittedEvent {
	return ReviewSubmittedEvent{
		BaseEvent:      events.NewBaseEvent(EventTypeReviewSubmitted, aggregateID(inv.ID()), at),
		InvitationID:   inv.ID(),
		CreatedBy:      inv.CreatedBy(),
		RecipientEmail: inv.RecipientEmail(),
		Approved:       approved,
		Revisions:      revisions,
		Failed:         failed,
	}
}

type ReviewCompletedEvent struct {
	events.BaseEvent
	InvitationID   uint
	CreatedBy      uint
	RecipientEmail string
	AssetCount     int
}

func NewReviewCompletedEvent(inv *Invitation, at time.Time) ReviewCompletedEvent {
	return ReviewCompletedEvent{
		BaseEvent:      events.NewBaseEvent(EventTypeReviewCompleted, aggregateID(inv.ID()), at),
		InvitationID:   inv.ID(),
		CreatedBy:      inv.CreatedBy(),
		RecipientEmail: inv.RecipientEmail(),
		AssetCount:     len(inv.assetIDs),
	}
}
