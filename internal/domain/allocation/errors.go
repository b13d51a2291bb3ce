package allocation

import "errors"

var (
	ErrListNotFound = errors.New("allocation list not found")

	// ErrModelerSlotTaken is returned when the one-modeler-per-asset guard fires.
	ErrModelerSlotTaken = errors.New("asset already has a modeler assignment")

	ErrInvalidRole = errors.New("invalid assignment role")
)
