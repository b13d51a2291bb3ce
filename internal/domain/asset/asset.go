package asset

import (
	"fmt"
	"time"

	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
)

// Asset is a 3D deliverable moving through the production pipeline. Its
// status and revision count change only through Transition.
type Asset struct {
	id            uint
	name          string
	status        vo.AssetStatus
	revisionCount int
	client        string
	batch         string
	priority      int
	deliveryDate  *time.Time
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// StatusChange describes the outcome of a Transition call.
// Changed is false when the asset was already in the target status.
type StatusChange struct {
	AssetID        uint
	Previous       vo.AssetStatus
	New            vo.AssetStatus
	RevisionNumber int
	Changed        bool
}

func ReconstructAsset(
	id uint,
	name string,
	status vo.AssetStatus,
	revisionCount int,
	client string,
	batch string,
	priority int,
	deliveryDate *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Asset, error) {
	if id == 0 {
		return nil, fmt.Errorf("asset ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if revisionCount < 0 {
		return nil, fmt.Errorf("revision count cannot be negative")
	}

	return &Asset{
		id:            id,
		name:          name,
		status:        status,
		revisionCount: revisionCount,
		client:        client,
		batch:         batch,
		priority:      priority,
		deliveryDate:  deliveryDate,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (a *Asset) ID() uint                 { return a.id }
func (a *Asset) Name() string             { return a.name }
func (a *Asset) Status() vo.AssetStatus   { return a.status }
func (a *Asset) RevisionCount() int       { return a.revisionCount }
func (a *Asset) Client() string           { return a.client }
func (a *Asset) Batch() string            { return a.batch }
func (a *Asset) Priority() int            { return a.priority }
func (a *Asset) DeliveryDate() *time.Time { return a.deliveryDate }
func (a *Asset) Version() int             { return a.version }
func (a *Asset) CreatedAt() time.Time     { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time     { return a.updatedAt }

// Transition moves the asset to target on behalf of actor.
//
// Asking for the current status is a no-op, which keeps repeated client
// decisions idempotent. Entering revisions or client_revision bumps the
// revision count by one and stamps the new value on the change.
func (a *Asset) Transition(target vo.AssetStatus, actor Actor, now time.Time) (StatusChange, error) {
	change := StatusChange{
		AssetID:        a.id,
		Previous:       a.status,
		New:            a.status,
		RevisionNumber: a.revisionCount,
	}

	if !target.IsValid() {
		return change, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	if target == a.status {
		return change, nil
	}
	if !a.status.CanTransitionTo(target) {
		return change, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.status, target)
	}
	if !actor.MayReach(target) {
		return change, fmt.Errorf("%w: %s may not set %s", ErrTransitionNotPermitted, actor.Role, target)
	}

	if target.EntersRevision() {
		a.revisionCount++
	}
	a.status = target
	a.version++
	a.updatedAt = now

	change.New = target
	change.RevisionNumber = a.revisionCount
	change.Changed = true
	return change, nil
}
