package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetByIDs returns the users that exist among ids.
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
}
