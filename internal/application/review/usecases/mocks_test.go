package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/domain/shared"
	"github.com/assetflow/assetflow/internal/domain/shared/events"
)

type txKey struct{}

// mockTx marks the context so repositories can tell whether they were
// called inside a transaction.
type mockTx struct{}

func (mockTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
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

func (m *mockPublisher) types() []string {
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.GetEventType())
	}
	return out
}

// fakeTokens hashes by prefixing, which is enough to tell plain and hashed
// values apart in assertions.
type fakeTokens struct {
	next string
}

func (f *fakeTokens) Generate() (string, string, error) {
	if f.next == "" {
		return "", "", errors.New("entropy exhausted")
	}
	return f.next, f.Hash(f.next), nil
}

func (f *fakeTokens) Hash(plain string) string { return "h:" + plain }

type fakeRenderer struct{}

func (fakeRenderer) Sanitize(text string) string {
	return strings.NewReplacer("<script>", "", "</script>", "").Replace(text)
}

func (fakeRenderer) ToHTML(text string) (string, error) { return "<p>" + text + "</p>", nil }

type mockInvitationRepository struct {
	byID   map[uint]*review.Invitation
	nextID uint
	// lockedReads counts row-locking lookups made inside a transaction.
	lockedReads int
}

func newMockInvitationRepository() *mockInvitationRepository {
	return &mockInvitationRepository{byID: map[uint]*review.Invitation{}}
}

// clone hands out copies so use cases cannot mutate stored state without
// going through a repository method.
func clone(inv *review.Invitation) *review.Invitation {
	c, err := review.ReconstructInvitation(inv.ID(), inv.TokenHash(), inv.AssetIDs(), inv.CreatedBy(),
		inv.RecipientEmail(), inv.Message(), inv.ExpiresAt(), inv.Status(), inv.CompletedAt(), inv.CancelledAt(),
		inv.CreatedAt(), inv.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func (m *mockInvitationRepository) Create(ctx context.Context, inv *review.Invitation) error {
	m.nextID++
	inv.SetID(m.nextID)
	m.byID[inv.ID()] = clone(inv)
	return nil
}

func (m *mockInvitationRepository) GetByID(ctx context.Context, id uint) (*review.Invitation, error) {
	if inv, ok := m.byID[id]; ok {
		return clone(inv), nil
	}
	return nil, review.ErrInvitationNotFound
}

func (m *mockInvitationRepository) GetByTokenHash(ctx context.Context, hash string) (*review.Invitation, error) {
	for _, inv := range m.byID {
		if inv.TokenHash() == hash {
			return clone(inv), nil
		}
	}
	return nil, review.ErrInvitationNotFound
}

func (m *mockInvitationRepository) GetByTokenHashForUpdate(ctx context.Context, hash string) (*review.Invitation, error) {
	if inTx(ctx) {
		m.lockedReads++
	}
	return m.GetByTokenHash(ctx, hash)
}

func (m *mockInvitationRepository) transition(id uint, fn func(inv *review.Invitation) error) (bool, error) {
	inv, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	return fn(inv) == nil, nil
}

func (m *mockInvitationRepository) MarkExpired(ctx context.Context, id uint, at time.Time) (bool, error) {
	return m.transition(id, func(inv *review.Invitation) error { return inv.Expire(at) })
}

func (m *mockInvitationRepository) MarkCompleted(ctx context.Context, id uint, at time.Time) (bool, error) {
	return m.transition(id, func(inv *review.Invitation) error { return inv.Complete(at) })
}

func (m *mockInvitationRepository) MarkCancelled(ctx context.Context, id uint, at time.Time) (bool, error) {
	return m.transition(id, func(inv *review.Invitation) error { return inv.Cancel(at) })
}

func (m *mockInvitationRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, inv := range m.byID {
		if inv.IsPastExpiry(now) {
			_ = inv.Expire(now)
			n++
		}
	}
	return n, nil
}

type responseKey struct{ invitationID, assetID uint }

type mockResponseRepository struct {
	rows      map[responseKey]*review.Response
	upserts   int
	UpsertErr map[uint]error
}

func newMockResponseRepository() *mockResponseRepository {
	return &mockResponseRepository{rows: map[responseKey]*review.Response{}}
}

func (m *mockResponseRepository) Upsert(ctx context.Context, r *review.Response) error {
	if err := m.UpsertErr[r.AssetID()]; err != nil {
		return err
	}
	m.upserts++
	m.rows[responseKey{r.InvitationID(), r.AssetID()}] = r
	return nil
}

func (m *mockResponseRepository) ListByInvitation(ctx context.Context, invitationID uint) ([]*review.Response, error) {
	var out []*review.Response
	for k, r := range m.rows {
		if k.invitationID == invitationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockResponseRepository) CountRespondedAssets(ctx context.Context, invitationID uint, assetIDs []uint) (int64, error) {
	var n int64
	for k := range m.rows {
		if k.invitationID == invitationID && shared.ContainsID(assetIDs, k.assetID) {
			n++
		}
	}
	return n, nil
}

type mockAnnotationRepository struct {
	rows            map[uint]*review.Annotation
	nextID          uint
	writesOutsideTx int
}

func (m *mockAnnotationRepository) track(ctx context.Context) {
	if !inTx(ctx) {
		m.writesOutsideTx++
	}
}

func newMockAnnotationRepository() *mockAnnotationRepository {
	return &mockAnnotationRepository{rows: map[uint]*review.Annotation{}}
}

func (m *mockAnnotationRepository) Create(ctx context.Context, a *review.Annotation) error {
	m.track(ctx)
	m.nextID++
	a.SetID(m.nextID)
	m.rows[a.ID()] = a
	return nil
}

func (m *mockAnnotationRepository) GetByID(ctx context.Context, invitationID, id uint) (*review.Annotation, error) {
	a, ok := m.rows[id]
	if !ok || a.InvitationID() != invitationID {
		return nil, review.ErrAnnotationNotFound
	}
	return a, nil
}

func (m *mockAnnotationRepository) Update(ctx context.Context, a *review.Annotation) error {
	m.track(ctx)
	m.rows[a.ID()] = a
	return nil
}

func (m *mockAnnotationRepository) Delete(ctx context.Context, invitationID, id uint) error {
	m.track(ctx)
	if _, err := m.GetByID(ctx, invitationID, id); err != nil {
		return err
	}
	delete(m.rows, id)
	return nil
}

func (m *mockAnnotationRepository) ListByInvitation(ctx context.Context, invitationID uint, assetID *uint) ([]*review.Annotation, error) {
	var out []*review.Annotation
	for id := uint(1); id <= m.nextID; id++ {
		a, ok := m.rows[id]
		if !ok || a.InvitationID() != invitationID {
			continue
		}
		if assetID != nil && a.AssetID() != *assetID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type mockAssetRepository struct {
	assets map[uint]*asset.Asset
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
	m.assets[a.ID()] = a
	return nil
}

type mockHistoryRepository struct {
	entries []*asset.StatusHistoryEntry
}

func (m *mockHistoryRepository) Append(ctx context.Context, e *asset.StatusHistoryEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockHistoryRepository) ListByAsset(ctx context.Context, assetID uint, offset, limit int) ([]*asset.StatusHistoryEntry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}
