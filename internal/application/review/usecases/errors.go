package usecases

import (
	"errors"

	"github.com/assetflow/assetflow/internal/application/lifecycle"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/review"
	apperrors "github.com/assetflow/assetflow/internal/shared/errors"
)

// toAppError maps review failures onto API errors. Every token state is
// terminal for that token.
func toAppError(err error, fallback string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, review.ErrInvitationNotFound):
		return apperrors.NewNotFoundError("review link not found").WithCause(err)
	case errors.Is(err, review.ErrInvitationExpired):
		return apperrors.NewGoneError("review link has expired").WithCause(err)
	case errors.Is(err, review.ErrInvitationCancelled):
		return apperrors.NewForbiddenError("review link was cancelled").WithCause(err)
	case errors.Is(err, review.ErrInvitationCompleted):
		return apperrors.NewForbiddenError("review has already been completed").WithCause(err)
	case errors.Is(err, review.ErrAssetNotInScope):
		return apperrors.NewNotFoundError(review.ErrAssetNotInScope.Error()).WithCause(err)
	case errors.Is(err, review.ErrAnnotationNotFound):
		return apperrors.NewNotFoundError("annotation not found").WithCause(err)
	case errors.Is(err, review.ErrInvalidAction):
		return apperrors.NewValidationError("action must be approve or revision", err.Error()).WithCause(err)
	case errors.Is(err, asset.ErrAssetNotFound),
		errors.Is(err, asset.ErrInvalidTransition),
		errors.Is(err, asset.ErrTransitionNotPermitted),
		errors.Is(err, asset.ErrVersionConflict):
		return lifecycle.ToAppError(err)
	default:
		return apperrors.NewInternalError(fallback).WithCause(err)
	}
}
