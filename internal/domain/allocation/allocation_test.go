package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/shared/authorization"
)

func uintPtr(v uint) *uint { return &v }

func TestNewList_Validation(t *testing.T) {
	now := time.Now().UTC()

	l, err := NewList("AL-20260101-abc123", 5, RoleModeler, 1, nil, 25, now)
	require.NoError(t, err)
	assert.Equal(t, uint(5), l.UserID())
	assert.Equal(t, RoleModeler, l.Role())
	assert.Equal(t, 25.0, l.Bonus())

	_, err = NewList("", 5, RoleModeler, 1, nil, 0, now)
	assert.Error(t, err)
	_, err = NewList("x", 0, RoleModeler, 1, nil, 0, now)
	assert.Error(t, err)
	_, err = NewList("x", 5, Role("director"), 1, nil, 0, now)
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = NewList("x", 5, RoleQA, 1, nil, -1, now)
	assert.Error(t, err)
}

func TestNewModelerAssignment_IsAutoAccepted(t *testing.T) {
	a, err := NewModelerAssignment(9, 5, 3, 120, 1, time.Now())
	require.NoError(t, err)

	assert.Equal(t, AssignmentAccepted, a.Status())
	assert.Equal(t, RoleModeler, a.Role())
	require.NotNil(t, a.AllocationListID())
	assert.Equal(t, uint(3), *a.AllocationListID())
	assert.False(t, a.IsProvisional())

	_, err = NewModelerAssignment(9, 5, 0, 0, 1, time.Now())
	assert.Error(t, err)
}

func TestNewQAAssignment(t *testing.T) {
	a, err := NewQAAssignment(9, 6, true, 0, 1, time.Now())
	require.NoError(t, err)

	assert.Equal(t, AssignmentPending, a.Status())
	assert.Equal(t, RoleQA, a.Role())
	assert.Nil(t, a.AllocationListID())
	assert.True(t, a.IsProvisional())

	_, err = NewQAAssignment(9, 6, false, -5, 1, time.Now())
	assert.Error(t, err)
}

func TestQACandidate_VisibleTo(t *testing.T) {
	const (
		defaultQA  uint = 20
		overrideQA uint = 21
		coReviewer uint = 22
		stranger   uint = 23
	)

	plain := QACandidate{AssetID: 1, ListID: 1, ModelerID: 10, PairedQAID: uintPtr(defaultQA), ExplicitQAIDs: []uint{coReviewer}}
	assert.True(t, plain.VisibleTo(defaultQA))
	assert.True(t, plain.VisibleTo(coReviewer))
	assert.False(t, plain.VisibleTo(stranger))

	overridden := plain
	overridden.ProvisionalQAIDs = []uint{overrideQA}
	assert.True(t, overridden.VisibleTo(overrideQA))
	assert.True(t, overridden.ProvisionalFor(overrideQA))
	assert.False(t, overridden.VisibleTo(defaultQA))
	assert.False(t, overridden.VisibleTo(coReviewer))

	unpaired := QACandidate{AssetID: 2, ListID: 1, ModelerID: 11}
	assert.False(t, unpaired.VisibleTo(defaultQA))
}

func TestRole_UserRole(t *testing.T) {
	assert.Equal(t, authorization.RoleModeler, RoleModeler.UserRole())
	assert.Equal(t, authorization.RoleQA, RoleQA.UserRole())

	_, err := NewRole("client")
	assert.Error(t, err)
}
