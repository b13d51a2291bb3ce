package usecases

import (
	"context"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
)

type mockTx struct{}

func (mockTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPublisher struct {
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(e events.DomainEvent) error {
	m.events = append(m.events, e)
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	m.events = append(m.events, evts...)
	return nil
}

type mockAssetRepository struct {
	assets       map[uint]*asset.Asset
	GetByIDErr   error
	updateErrFor map[uint]error
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	if a, ok := m.assets[id]; ok {
		return a, nil
	}
	return nil, asset.ErrAssetNotFound
}

func (m *mockAssetRepository) GetByIDs(ctx context.Context, ids []uint) ([]*asset.Asset, error) {
	var out []*asset.Asset
	for _, id := range ids {
		if a, ok := m.assets[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssetRepository) GetByIDsForUpdate(ctx context.Context, ids []uint) ([]*asset.Asset, error) {
	return m.GetByIDs(ctx, ids)
}

func (m *mockAssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	if err := m.updateErrFor[a.ID()]; err != nil {
		return err
	}
	m.assets[a.ID()] = a
	return nil
}

type mockHistoryRepository struct {
	entries []*asset.StatusHistoryEntry
	// lastOffset and lastLimit record the window of the last ListByAsset call.
	lastOffset, lastLimit int
}

func (m *mockHistoryRepository) Append(ctx context.Context, entry *asset.StatusHistoryEntry) error {
	entry.SetID(uint(len(m.entries) + 1))
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryRepository) ListByAsset(ctx context.Context, assetID uint, offset, limit int) ([]*asset.StatusHistoryEntry, int64, error) {
	m.lastOffset, m.lastLimit = offset, limit
	var out []*asset.StatusHistoryEntry
	for _, e := range m.entries {
		if e.AssetID() == assetID {
			out = append(out, e)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

// mockAssignmentRepository only serves the reads the responsibility check needs.
type mockAssignmentRepository struct {
	allocation.AssignmentRepository
	rows       []*allocation.Assignment
	candidates map[uint][]allocation.QACandidate
}

func (m *mockAssignmentRepository) ListByAssetIDs(ctx context.Context, assetIDs []uint) ([]*allocation.Assignment, error) {
	return m.rows, nil
}

func (m *mockAssignmentRepository) ListQACandidates(ctx context.Context, qaUserID uint) ([]allocation.QACandidate, error) {
	return m.candidates[qaUserID], nil
}
