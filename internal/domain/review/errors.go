package review

import "errors"

var (
	ErrInvitationNotFound  = errors.New("review invitation not found")
	ErrInvitationExpired   = errors.New("review invitation has expired")
	ErrInvitationCancelled = errors.New("review invitation was cancelled")
	ErrInvitationCompleted = errors.New("review invitation is already completed")

	// ErrAssetNotInScope never says whether the asset exists.
	ErrAssetNotInScope = errors.New("asset not found in this review")

	ErrAnnotationNotFound = errors.New("annotation not found")
	ErrInvalidAction      = errors.New("invalid review action")
)
