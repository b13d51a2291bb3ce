package allocation

import "context"

type ListRepository interface {
	Create(ctx context.Context, list *List) error
	GetByID(ctx context.Context, id uint) (*List, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*List, error)
	// DeleteIfOrphaned deletes those of ids that no assignment references,
	// evaluated at delete time in a single statement.
	DeleteIfOrphaned(ctx context.Context, ids []uint) (int64, error)
	// DeleteAllOrphaned is the global sweep used by the scheduler.
	DeleteAllOrphaned(ctx context.Context) (int64, error)
}

type AssignmentRepository interface {
	CreateBatch(ctx context.Context, assignments []*Assignment) error
	// UpsertQA inserts QA rows, silently skipping (asset, user, role) pairs
	// that already exist. Returns the number of rows actually inserted.
	UpsertQA(ctx context.Context, assignments []*Assignment) (int64, error)
	// DeleteByAssets removes every assignment of role on assetIDs and returns
	// the allocation lists the removed rows belonged to.
	DeleteByAssets(ctx context.Context, assetIDs []uint, role Role) ([]uint, error)
	// DeleteMatching removes assignments of role for assetIDs x userIDs.
	DeleteMatching(ctx context.Context, assetIDs, userIDs []uint, role Role) (int64, []uint, error)
	ListByListID(ctx context.Context, listID uint) ([]*Assignment, error)
	ListByAssetIDs(ctx context.Context, assetIDs []uint) ([]*Assignment, error)
	ListQACandidates(ctx context.Context, qaUserID uint) ([]QACandidate, error)
}
