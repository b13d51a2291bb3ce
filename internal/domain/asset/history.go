package asset

import (
	"fmt"
	"time"

	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
)

// Metadata keys written by the shared review flow.
const (
	MetaReviewerEmail = "reviewer_email"
	MetaInvitationID  = "invitation_id"
	MetaSource        = "source"

	SourceSharedReview = "shared_review"
)

// StatusHistoryEntry is one row of the append-only status ledger. Entries are
// never updated or deleted once written.
type StatusHistoryEntry struct {
	id             uint
	assetID        uint
	previousStatus vo.AssetStatus
	newStatus      vo.AssetStatus
	actionType     vo.ActionType
	changedBy      uint
	actorRole      string
	revisionNumber int
	reason         string
	comments       string
	metadata       map[string]any
	createdAt      time.Time
}

// HistoryDetails carries the free-form parts of a ledger entry.
type HistoryDetails struct {
	Reason   string
	Comments string
	Metadata map[string]any
}

// NewStatusHistoryEntry records an applied change. Unchanged results are rejected
// so that no-op transitions never reach the ledger.
func NewStatusHistoryEntry(change StatusChange, actor Actor, action vo.ActionType, details HistoryDetails, at time.Time) (*StatusHistoryEntry, error) {
	if !change.Changed {
		return nil, fmt.Errorf("status of asset %d did not change", change.AssetID)
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid action type: %s", action)
	}

	metadata := make(map[string]any, len(details.Metadata))
	for k, v := range details.Metadata {
		metadata[k] = v
	}

	return &StatusHistoryEntry{
		assetID:        change.AssetID,
		previousStatus: change.Previous,
		newStatus:      change.New,
		actionType:     action,
		changedBy:      actor.UserID,
		actorRole:      actor.Role.String(),
		revisionNumber: change.RevisionNumber,
		reason:         details.Reason,
		comments:       details.Comments,
		metadata:       metadata,
		createdAt:      at,
	}, nil
}

func ReconstructStatusHistoryEntry(
	id, assetID uint,
	previousStatus, newStatus vo.AssetStatus,
	actionType vo.ActionType,
	changedBy uint,
	actorRole string,
	revisionNumber int,
	reason, comments string,
	metadata map[string]any,
	createdAt time.Time,
) *StatusHistoryEntry {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &StatusHistoryEntry{
		id:             id,
		assetID:        assetID,
		previousStatus: previousStatus,
		newStatus:      newStatus,
		actionType:     actionType,
		changedBy:      changedBy,
		actorRole:      actorRole,
		revisionNumber: revisionNumber,
		reason:         reason,
		comments:       comments,
		metadata:       metadata,
		createdAt:      createdAt,
	}
}

func (e *StatusHistoryEntry) ID() uint                       { return e.id }
func (e *StatusHistoryEntry) AssetID() uint                  { return e.assetID }
func (e *StatusHistoryEntry) PreviousStatus() vo.AssetStatus { return e.previousStatus }
func (e *StatusHistoryEntry) NewStatus() vo.AssetStatus      { return e.newStatus }
func (e *StatusHistoryEntry) ActionType() vo.ActionType      { return e.actionType }
func (e *StatusHistoryEntry) ChangedBy() uint                { return e.changedBy }
func (e *StatusHistoryEntry) ActorRole() string              { return e.actorRole }
func (e *StatusHistoryEntry) RevisionNumber() int            { return e.revisionNumber }
func (e *StatusHistoryEntry) Reason() string                 { return e.reason }
func (e *StatusHistoryEntry) Comments() string               { return e.comments }
func (e *StatusHistoryEntry) CreatedAt() time.Time           { return e.createdAt }

func (e *StatusHistoryEntry) Metadata() map[string]any {
	out := make(map[string]any, len(e.metadata))
	for k, v := range e.metadata {
		out[k] = v
	}
	return out
}

// SetID is called by the repository after insert.
func (e *StatusHistoryEntry) SetID(id uint) {
	e.id = id
}
