package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/shared/authorization"
)

func TestAssetStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to AssetStatus
		allowed  bool
	}{
		{StatusNotStarted, StatusInProduction, true},
		{StatusInProduction, StatusDeliveredByArtist, true},
		{StatusDeliveredByArtist, StatusApproved, true},
		{StatusDeliveredByArtist, StatusRevisions, true},
		{StatusRevisions, StatusInProduction, true},
		{StatusApproved, StatusApprovedByClient, true},
		{StatusApproved, StatusClientRevision, true},
		{StatusClientRevision, StatusInProduction, true},
		{StatusClientRevision, StatusApprovedByClient, true},
		{StatusApprovedByClient, StatusClientRevision, true},

		{StatusNotStarted, StatusApproved, false},
		{StatusNotStarted, StatusApprovedByClient, false},
		{StatusInProduction, StatusApproved, false},
		{StatusDeliveredByArtist, StatusApprovedByClient, false},
		{StatusRevisions, StatusApproved, false},
		{StatusApprovedByClient, StatusInProduction, false},
		{StatusApproved, StatusNotStarted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAssetStatus_NoSelfLoops(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.False(t, s.CanTransitionTo(s), s)
	}
}

func TestAssetStatus_EntersRevision(t *testing.T) {
	for _, s := range AllStatuses() {
		want := s == StatusRevisions || s == StatusClientRevision
		assert.Equal(t, want, s.EntersRevision(), s)
	}
}

func TestNewAssetStatus(t *testing.T) {
	s, err := NewAssetStatus("delivered_by_artist")
	require.NoError(t, err)
	assert.Equal(t, StatusDeliveredByArtist, s)

	_, err = NewAssetStatus("Delivered")
	assert.Error(t, err)
	_, err = NewAssetStatus("")
	assert.Error(t, err)
}

func TestAllowedTransitions_ReturnsCopy(t *testing.T) {
	got := StatusApproved.AllowedTransitions()
	got[0] = StatusNotStarted
	assert.Equal(t, StatusApprovedByClient, StatusApproved.AllowedTransitions()[0])
}

func TestDefaultActionFor(t *testing.T) {
	assert.Equal(t, ActionStatusUpdate, DefaultActionFor(authorization.RoleModeler))
	assert.Equal(t, ActionQAReview, DefaultActionFor(authorization.RoleQA))
	assert.Equal(t, ActionClientReview, DefaultActionFor(authorization.RoleClient))
	assert.Equal(t, ActionAdminOverride, DefaultActionFor(authorization.RoleAdmin))

	_, err := NewActionType("teleport")
	assert.Error(t, err)
}
