package review

import (
	"context"
	"time"
)

type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id uint) (*Invitation, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*Invitation, error)
	// GetByTokenHashForUpdate locks the invitation row for the rest of the
	// surrounding transaction.
	GetByTokenHashForUpdate(ctx context.Context, tokenHash string) (*Invitation, error)
	// The Mark* methods are conditional on the row still being pending and
	// report whether they changed it.
	MarkExpired(ctx context.Context, id uint, at time.Time) (bool, error)
	MarkCompleted(ctx context.Context, id uint, at time.Time) (bool, error)
	MarkCancelled(ctx context.Context, id uint, at time.Time) (bool, error)
	// ExpireOverdue flips every pending invitation past its expiry.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type ResponseRepository interface {
	// Upsert writes the response, replacing any earlier one for the same
	// (invitation, asset).
	Upsert(ctx context.Context, resp *Response) error
	ListByInvitation(ctx context.Context, invitationID uint) ([]*Response, error)
	// CountRespondedAssets counts distinct assets among assetIDs that have a
	// persisted response.
	CountRespondedAssets(ctx context.Context, invitationID uint, assetIDs []uint) (int64, error)
}

type AnnotationRepository interface {
	Create(ctx context.Context, a *Annotation) error
	GetByID(ctx context.Context, invitationID, id uint) (*Annotation, error)
	Update(ctx context.Context, a *Annotation) error
	Delete(ctx context.Context, invitationID, id uint) error
	ListByInvitation(ctx context.Context, invitationID uint, assetID *uint) ([]*Annotation, error)
}

// TokenGenerator issues review tokens. Plain tokens are shown once; only
// hashes are stored.
type TokenGenerator interface {
	Generate() (plainToken string, tokenHash string, err error)
	Hash(plainToken string) string
}
