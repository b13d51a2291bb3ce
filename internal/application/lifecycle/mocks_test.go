package lifecycle

import (
	"context"

	"github.com/assetflow/assetflow/internal/domain/asset"
)

type mockAssetRepository struct {
	GetByIDFunc           func(ctx context.Context, id uint) (*asset.Asset, error)
	GetByIDsFunc          func(ctx context.Context, ids []uint) ([]*asset.Asset, error)
	GetByIDsForUpdateFunc func(ctx context.Context, ids []uint) ([]*asset.Asset, error)
	UpdateFunc            func(ctx context.Context, a *asset.Asset) error
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, asset.ErrAssetNotFound
}

func (m *mockAssetRepository) GetByIDs(ctx context.Context, ids []uint) ([]*asset.Asset, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockAssetRepository) GetByIDsForUpdate(ctx context.Context, ids []uint) ([]*asset.Asset, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockAssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

type mockHistoryRepository struct {
	entries    []*asset.StatusHistoryEntry
	AppendFunc func(ctx context.Context, entry *asset.StatusHistoryEntry) error
}

func (m *mockHistoryRepository) Append(ctx context.Context, entry *asset.StatusHistoryEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryRepository) ListByAsset(ctx context.Context, assetID uint, offset, limit int) ([]*asset.StatusHistoryEntry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}
