package review

import (
	"fmt"
	"time"

	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
)

// Action is a reviewer's decision on one asset.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionRevision Action = "revision"
)

func (a Action) IsValid() bool {
	return a == ActionApprove || a == ActionRevision
}

// TargetStatus is the asset status the decision drives the asset into.
func (a Action) TargetStatus() vo.AssetStatus {
	if a == ActionRevision {
		return vo.StatusClientRevision
	}
	return vo.StatusApprovedByClient
}

func NewAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAction, s)
	}
	return a, nil
}

// Response is the reviewer's current decision for one asset of an invitation.
// There is at most one per (invitation, asset); resubmitting overwrites it.
type Response struct {
	invitationID uint
	assetID      uint
	action       Action
	comment      string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewResponse(invitationID, assetID uint, action Action, comment string, now time.Time) (*Response, error) {
	if invitationID == 0 || assetID == 0 {
		return nil, fmt.Errorf("invitation and asset are required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}
	return &Response{
		invitationID: invitationID,
		assetID:      assetID,
		action:       action,
		comment:      comment,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructResponse(invitationID, assetID uint, action Action, comment string, createdAt, updatedAt time.Time) *Response {
	return &Response{
		invitationID: invitationID,
		assetID:      assetID,
		action:       action,
		comment:      comment,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Response) InvitationID() uint   { return r.invitationID }
func (r *Response) AssetID() uint        { return r.assetID }
func (r *Response) Action() Action       { return r.action }
func (r *Response) Comment() string      { return r.comment }
func (r *Response) CreatedAt() time.Time { return r.createdAt }
func (r *Response) UpdatedAt() time.Time { return r.updatedAt }
