package asset

import "errors"

var (
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidTransition means the target status is not reachable from the
	// current one. The state machine never clamps to a nearby status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTransitionNotPermitted means the edge exists but the actor's role may not take it.
	ErrTransitionNotPermitted = errors.New("status transition not permitted for actor")

	ErrInvalidStatus = errors.New("invalid asset status")

	// ErrVersionConflict indicates an optimistic locking conflict
	ErrVersionConflict = errors.New("version conflict: asset was modified")
)
