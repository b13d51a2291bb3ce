package asset

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/assetflow/assetflow/internal/domain/asset/valueobjects"
	"github.com/assetflow/assetflow/internal/shared/authorization"
)

var (
	admin   = PlatformActor(1, authorization.RoleAdmin)
	modeler = PlatformActor(2, authorization.RoleModeler)
	qa      = PlatformActor(3, authorization.RoleQA)
	client  = PlatformActor(4, authorization.RoleClient)
	shared  = ExternalReviewer(1)
)

func newAsset(t *testing.T, status vo.AssetStatus, revisions int) *Asset {
	t.Helper()
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	a, err := ReconstructAsset(10, "Chair_LOD0", status, revisions, "Acme", "B-7", 2, nil, 1, now, now)
	require.NoError(t, err)
	return a
}

func TestReconstructAsset_Validation(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructAsset(0, "x", vo.StatusNotStarted, 0, "", "", 0, nil, 1, now, now)
	assert.Error(t, err)

	_, err = ReconstructAsset(1, "x", vo.AssetStatus("archived"), 0, "", "", 0, nil, 1, now, now)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ReconstructAsset(1, "x", vo.StatusApproved, -1, "", "", 0, nil, 1, now, now)
	assert.Error(t, err)
}

func TestTransition_HappyPathThroughPipeline(t *testing.T) {
	a := newAsset(t, vo.StatusNotStarted, 0)
	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	steps := []struct {
		actor  Actor
		target vo.AssetStatus
		rev    int
	}{
		{admin, vo.StatusInProduction, 0},
		{modeler, vo.StatusDeliveredByArtist, 0},
		{qa, vo.StatusRevisions, 1},
		{modeler, vo.StatusInProduction, 1},
		{modeler, vo.StatusDeliveredByArtist, 1},
		{qa, vo.StatusApproved, 1},
		{shared, vo.StatusClientRevision, 2},
		{modeler, vo.StatusInProduction, 2},
		{modeler, vo.StatusDeliveredByArtist, 2},
		{qa, vo.StatusApproved, 2},
		{client, vo.StatusApprovedByClient, 2},
	}

	for _, s := range steps {
		prev := a.Status()
		change, err := a.Transition(s.target, s.actor, at)
		require.NoError(t, err, "%s -> %s", prev, s.target)
		assert.True(t, change.Changed)
		assert.Equal(t, prev, change.Previous)
		assert.Equal(t, s.target, change.New)
		assert.Equal(t, s.rev, change.RevisionNumber)
		assert.Equal(t, s.rev, a.RevisionCount())
	}

	assert.Equal(t, vo.StatusApprovedByClient, a.Status())
	assert.Equal(t, 1+len(steps), a.Version())
	assert.Equal(t, at, a.UpdatedAt())
}

func TestTransition_RevisionCountIncrementsExactlyOnce(t *testing.T) {
	a := newAsset(t, vo.StatusApproved, 3)

	change, err := a.Transition(vo.StatusClientRevision, shared, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, change.RevisionNumber)
	assert.Equal(t, 4, a.RevisionCount())

	// Correction back to approval keeps the count.
	change, err = a.Transition(vo.StatusApprovedByClient, shared, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, change.RevisionNumber)

	// And flipping again starts another revision.
	change, err = a.Transition(vo.StatusClientRevision, shared, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, change.RevisionNumber)
}

func TestTransition_SameStatusIsNoop(t *testing.T) {
	a := newAsset(t, vo.StatusClientRevision, 2)

	change, err := a.Transition(vo.StatusClientRevision, shared, time.Now())
	require.NoError(t, err)
	assert.False(t, change.Changed)
	assert.Equal(t, 2, a.RevisionCount())
	assert.Equal(t, 1, a.Version())
}

func TestTransition_RejectsUnreachableTarget(t *testing.T) {
	a := newAsset(t, vo.StatusInProduction, 0)

	_, err := a.Transition(vo.StatusApprovedByClient, admin, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, vo.StatusInProduction, a.Status())
	assert.Equal(t, 1, a.Version())
}

func TestTransition_RoleRestrictions(t *testing.T) {
	tests := []struct {
		name   string
		from   vo.AssetStatus
		target vo.AssetStatus
		actor  Actor
		err    error
	}{
		{"modeler cannot approve", vo.StatusDeliveredByArtist, vo.StatusApproved, modeler, ErrTransitionNotPermitted},
		{"qa cannot deliver", vo.StatusInProduction, vo.StatusDeliveredByArtist, qa, ErrTransitionNotPermitted},
		{"client cannot qa", vo.StatusDeliveredByArtist, vo.StatusRevisions, client, ErrTransitionNotPermitted},
		{"external cannot restart production", vo.StatusClientRevision, vo.StatusInProduction, shared, ErrTransitionNotPermitted},
		{"external cannot skip qa", vo.StatusDeliveredByArtist, vo.StatusApprovedByClient, shared, ErrInvalidTransition},
		{"admin may take any edge", vo.StatusDeliveredByArtist, vo.StatusApproved, admin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAsset(t, tt.from, 0)
			_, err := a.Transition(tt.target, tt.actor, time.Now())
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
			assert.Equal(t, tt.from, a.Status())
		})
	}
}

func TestTransition_RejectsUnknownStatus(t *testing.T) {
	a := newAsset(t, vo.StatusApproved, 0)
	_, err := a.Transition(vo.AssetStatus("shipped"), admin, time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
