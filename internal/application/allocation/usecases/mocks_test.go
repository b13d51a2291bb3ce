package usecases

import (
	"context"
	"sort"
	"sync"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/shared"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
	"github.com/assetflow/assetflow/internal/domain/user"
)

type mockTx struct {
	calls int
}

func (m *mockTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(e events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		_ = m.Publish(e)
	}
	return nil
}

func (m *mockPublisher) types() []string {
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.GetEventType())
	}
	return out
}

type mockUserRepository struct {
	users map[uint]*user.User
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockAssetRepository struct {
	assets     map[uint]*asset.Asset
	UpdateFunc func(ctx context.Context, a *asset.Asset) error
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
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
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	m.assets[a.ID()] = a
	return nil
}

type mockHistoryRepository struct {
	entries []*asset.StatusHistoryEntry
}

func (m *mockHistoryRepository) Append(ctx context.Context, entry *asset.StatusHistoryEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryRepository) ListByAsset(ctx context.Context, assetID uint, offset, limit int) ([]*asset.StatusHistoryEntry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

// memAllocationStore implements both allocation repositories over maps, with
// the same uniqueness and orphan semantics as the SQL implementation.
type memAllocationStore struct {
	lists       map[uint]*allocation.List
	assignments []*allocation.Assignment
	// pairings maps modeler ID to their default QA.
	pairings map[uint]uint
	nextID   uint

	CreateBatchErr error
	DeleteOrphErr  error
}

func newMemAllocationStore() *memAllocationStore {
	return &memAllocationStore{
		lists:    map[uint]*allocation.List{},
		pairings: map[uint]uint{},
	}
}

func (s *memAllocationStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memAllocationStore) Create(ctx context.Context, list *allocation.List) error {
	list.SetID(s.id())
	s.lists[list.ID()] = list
	return nil
}

func (s *memAllocationStore) GetByID(ctx context.Context, id uint) (*allocation.List, error) {
	if l, ok := s.lists[id]; ok {
		return l, nil
	}
	return nil, allocation.ErrListNotFound
}

func (s *memAllocationStore) GetByIDs(ctx context.Context, ids []uint) ([]*allocation.List, error) {
	var out []*allocation.List
	for _, id := range ids {
		if l, ok := s.lists[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memAllocationStore) referenced(listID uint) bool {
	for _, a := range s.assignments {
		if a.AllocationListID() != nil && *a.AllocationListID() == listID {
			return true
		}
	}
	return false
}

func (s *memAllocationStore) DeleteIfOrphaned(ctx context.Context, ids []uint) (int64, error) {
	if s.DeleteOrphErr != nil {
		return 0, s.DeleteOrphErr
	}
	var n int64
	for _, id := range ids {
		if _, ok := s.lists[id]; ok && !s.referenced(id) {
			delete(s.lists, id)
			n++
		}
	}
	return n, nil
}

func (s *memAllocationStore) DeleteAllOrphaned(ctx context.Context) (int64, error) {
	ids := make([]uint, 0, len(s.lists))
	for id := range s.lists {
		ids = append(ids, id)
	}
	return s.DeleteIfOrphaned(ctx, ids)
}

func (s *memAllocationStore) CreateBatch(ctx context.Context, as []*allocation.Assignment) error {
	if s.CreateBatchErr != nil {
		return s.CreateBatchErr
	}
	for _, a := range as {
		if a.Role() == allocation.RoleModeler && len(s.byAssetRole(a.AssetID(), allocation.RoleModeler)) > 0 {
			return allocation.ErrModelerSlotTaken
		}
		a.SetID(s.id())
		s.assignments = append(s.assignments, a)
	}
	return nil
}

func (s *memAllocationStore) UpsertQA(ctx context.Context, as []*allocation.Assignment) (int64, error) {
	var n int64
	for _, a := range as {
		exists := false
		for _, cur := range s.byAssetRole(a.AssetID(), allocation.RoleQA) {
			if cur.UserID() == a.UserID() {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		a.SetID(s.id())
		s.assignments = append(s.assignments, a)
		n++
	}
	return n, nil
}

func (s *memAllocationStore) byAssetRole(assetID uint, role allocation.Role) []*allocation.Assignment {
	var out []*allocation.Assignment
	for _, a := range s.assignments {
		if a.AssetID() == assetID && a.Role() == role {
			out = append(out, a)
		}
	}
	return out
}

func (s *memAllocationStore) deleteWhere(match func(a *allocation.Assignment) bool) (int64, []uint) {
	var (
		kept  []*allocation.Assignment
		lists []uint
		n     int64
	)
	for _, a := range s.assignments {
		if !match(a) {
			kept = append(kept, a)
			continue
		}
		n++
		if a.AllocationListID() != nil {
			lists = append(lists, *a.AllocationListID())
		}
	}
	s.assignments = kept
	return n, shared.UniqueIDs(lists)
}

func (s *memAllocationStore) DeleteByAssets(ctx context.Context, assetIDs []uint, role allocation.Role) ([]uint, error) {
	_, lists := s.deleteWhere(func(a *allocation.Assignment) bool {
		return a.Role() == role && shared.ContainsID(assetIDs, a.AssetID())
	})
	return lists, nil
}

func (s *memAllocationStore) DeleteMatching(ctx context.Context, assetIDs, userIDs []uint, role allocation.Role) (int64, []uint, error) {
	n, lists := s.deleteWhere(func(a *allocation.Assignment) bool {
		return a.Role() == role && shared.ContainsID(assetIDs, a.AssetID()) && shared.ContainsID(userIDs, a.UserID())
	})
	return n, lists, nil
}

func (s *memAllocationStore) ListByListID(ctx context.Context, listID uint) ([]*allocation.Assignment, error) {
	var out []*allocation.Assignment
	for _, a := range s.assignments {
		if a.AllocationListID() != nil && *a.AllocationListID() == listID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAllocationStore) ListByAssetIDs(ctx context.Context, assetIDs []uint) ([]*allocation.Assignment, error) {
	var out []*allocation.Assignment
	for _, a := range s.assignments {
		if shared.ContainsID(assetIDs, a.AssetID()) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAllocationStore) ListQACandidates(ctx context.Context, qaUserID uint) ([]allocation.QACandidate, error) {
	var out []allocation.QACandidate
	for _, m := range s.assignments {
		if m.Role() != allocation.RoleModeler || m.AllocationListID() == nil {
			continue
		}
		c := allocation.QACandidate{AssetID: m.AssetID(), ListID: *m.AllocationListID(), ModelerID: m.UserID()}
		if qa, ok := s.pairings[m.UserID()]; ok {
			c.PairedQAID = &qa
		}
		for _, q := range s.byAssetRole(m.AssetID(), allocation.RoleQA) {
			if q.IsProvisional() {
				c.ProvisionalQAIDs = append(c.ProvisionalQAIDs, q.UserID())
			} else {
				c.ExplicitQAIDs = append(c.ExplicitQAIDs, q.UserID())
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out, nil
}

func (s *memAllocationStore) count(role allocation.Role, assetID uint) int {
	return len(s.byAssetRole(assetID, role))
}
