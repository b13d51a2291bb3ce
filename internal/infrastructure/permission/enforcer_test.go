package permission

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/assetflow/assetflow/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	e, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, e.SeedDefaultPolicies())
	return e
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"admin", ResourceAssignment, ActionCreate, true},
		{"modeler", ResourceAssignment, ActionCreate, false},
		{"qa", ResourceQAAssetList, ActionRead, true},
		{"modeler", ResourceQAAssetList, ActionRead, false},
		{"client", ResourceAssetStatus, ActionUpdate, true},
		{"client", ResourceSharedReview, ActionCreate, false},
		{"admin", ResourceSharedReview, ActionCreate, true},
		{"stranger", ResourceAssetStatus, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"_"+tt.resource+"_"+tt.action, func(t *testing.T) {
			allowed, err := e.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestEnforcer_SeedIsIdempotentAndPersisted(t *testing.T) {
	e := newTestEnforcer(t)

	require.NoError(t, e.SeedDefaultPolicies())

	policies, err := e.PoliciesFor("admin")
	require.NoError(t, err)
	assert.Len(t, policies, 8)

	require.NoError(t, e.LoadPolicy())
	allowed, err := e.Enforce("admin", ResourceAssignment, ActionDelete)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestEnforcer_AddAndRemovePolicy(t *testing.T) {
	e := newTestEnforcer(t)

	require.NoError(t, e.AddPolicy("modeler", ResourceSharedReview, ActionCreate))
	allowed, err := e.Enforce("modeler", ResourceSharedReview, ActionCreate)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, e.RemovePolicy("modeler", ResourceSharedReview, ActionCreate))
	allowed, err = e.Enforce("modeler", ResourceSharedReview, ActionCreate)
	require.NoError(t, err)
	assert.False(t, allowed)
}
