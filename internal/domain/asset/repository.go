package asset

import "context"

// Repository is the persistence boundary for assets. Writes go through Update
// with optimistic locking on version.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Asset, error)
	// GetByIDs loads assets in one query. Missing IDs are simply absent.
	GetByIDs(ctx context.Context, ids []uint) ([]*Asset, error)
	// GetByIDsForUpdate is GetByIDs with row locks held until the surrounding
	// transaction ends.
	GetByIDsForUpdate(ctx context.Context, ids []uint) ([]*Asset, error)
	Update(ctx context.Context, a *Asset) error
}

// HistoryRepository persists the status ledger. It deliberately exposes no
// update or delete.
type HistoryRepository interface {
	Append(ctx context.Context, entry *StatusHistoryEntry) error
	ListByAsset(ctx context.Context, assetID uint, offset, limit int) ([]*StatusHistoryEntry, int64, error)
}
