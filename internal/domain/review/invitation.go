package review

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/assetflow/assetflow/internal/domain/shared"
)

// Invitation grants the holder of an opaque token the right to review a fixed
// set of assets until it expires, is cancelled or every asset has a response.
// Only the sha256 hash of the token is kept.
type Invitation struct {
	id             uint
	tokenHash      string
	assetIDs       []uint
	createdBy      uint
	recipientEmail string
	message        string
	expiresAt      time.Time
	status         InvitationStatus
	completedAt    *time.Time
	cancelledAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewInvitation(tokenHash string, assetIDs []uint, createdBy uint, recipientEmail, message string, expiresAt, now time.Time) (*Invitation, error) {
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash is required")
	}
	ids := shared.UniqueIDs(assetIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one asset is required")
	}
	if createdBy == 0 {
		return nil, fmt.Errorf("creator is required")
	}
	if _, err := mail.ParseAddress(recipientEmail); err != nil {
		return nil, fmt.Errorf("invalid recipient email: %w", err)
	}
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	return &Invitation{
		tokenHash:      tokenHash,
		assetIDs:       ids,
		createdBy:      createdBy,
		recipientEmail: recipientEmail,
		message:        message,
		expiresAt:      expiresAt,
		status:         InvitationPending,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructInvitation(
	id uint,
	tokenHash string,
	assetIDs []uint,
	createdBy uint,
	recipientEmail, message string,
	expiresAt time.Time,
	status InvitationStatus,
	completedAt, cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Invitation, error) {
	if id == 0 {
		return nil, fmt.Errorf("invitation ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invitation status: %q", status)
	}
	return &Invitation{
		id:             id,
		tokenHash:      tokenHash,
		assetIDs:       assetIDs,
		createdBy:      createdBy,
		recipientEmail: recipientEmail,
		message:        message,
		expiresAt:      expiresAt,
		status:         status,
		completedAt:    completedAt,
		cancelledAt:    cancelledAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (i *Invitation) ID() uint                 { return i.id }
func (i *Invitation) TokenHash() string        { return i.tokenHash }
func (i *Invitation) CreatedBy() uint          { return i.createdBy }
func (i *Invitation) RecipientEmail() string   { return i.recipientEmail }
func (i *Invitation) Message() string          { return i.message }
func (i *Invitation) ExpiresAt() time.Time     { return i.expiresAt }
func (i *Invitation) Status() InvitationStatus { return i.status }
func (i *Invitation) CompletedAt() *time.Time  { return i.completedAt }
func (i *Invitation) CancelledAt() *time.Time  { return i.cancelledAt }
func (i *Invitation) CreatedAt() time.Time     { return i.createdAt }
func (i *Invitation) UpdatedAt() time.Time     { return i.updatedAt }

func (i *Invitation) AssetIDs() []uint {
	out := make([]uint, len(i.assetIDs))
	copy(out, i.assetIDs)
	return out
}

func (i *Invitation) SetID(id uint) { i.id = id }

// IsPastExpiry reports whether a pending invitation should be flipped to expired.
func (i *Invitation) IsPastExpiry(now time.Time) bool {
	return i.status == InvitationPending && shared.IsExpiredAt(&i.expiresAt, now)
}

// CheckUsable returns nil for a live invitation, otherwise the error matching
// its state. Terminal states win over the clock, so a completed invitation
// stays completed after its expiry passes.
func (i *Invitation) CheckUsable(now time.Time) error {
	if i.status.IsTerminal() {
		return i.status.Err()
	}
	if i.IsPastExpiry(now) {
		return ErrInvitationExpired
	}
	return nil
}

// Expire flips a pending invitation to expired.
func (i *Invitation) Expire(now time.Time) error {
	if i.status != InvitationPending {
		return i.status.Err()
	}
	i.status = InvitationExpired
	i.updatedAt = now
	return nil
}

func (i *Invitation) Complete(now time.Time) error {
	if i.status != InvitationPending {
		return i.status.Err()
	}
	i.status = InvitationCompleted
	i.completedAt = &now
	i.updatedAt = now
	return nil
}

func (i *Invitation) Cancel(now time.Time) error {
	if i.status != InvitationPending {
		return i.status.Err()
	}
	i.status = InvitationCancelled
	i.cancelledAt = &now
	i.updatedAt = now
	return nil
}

func (i *Invitation) InScope(assetID uint) bool {
	return shared.ContainsID(i.assetIDs, assetID)
}

// CheckScope fails with ErrAssetNotInScope if any id is outside the invitation.
func (i *Invitation) CheckScope(assetIDs []uint) error {
	for _, id := range assetIDs {
		if !i.InScope(id) {
			return fmt.Errorf("%w: %d", ErrAssetNotInScope, id)
		}
	}
	return nil
}
