package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/shared/config"
)

func TestClassifyGormLine(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want logClass
	}{
		{"version query", "SELECT VERSION()", logDrop},
		{"schema query", "SELECT SCHEMA_NAME from Information_schema.schemata", logDrop},
		{"sqlite catalog", "SELECT count(*) FROM sqlite_master WHERE type='table'", logDrop},
		{"error", "/repo/asset.go:42 [error] Error 1062: Duplicate entry", logError},
		{"slow", "/repo/asset.go:42 SLOW SQL >= 200ms", logSlow},
		{"plain", "SELECT * FROM assets WHERE id = 7", logDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyGormLine(tt.msg))
		})
	}
}

func TestNewDialector_RejectsUnknownDriver(t *testing.T) {
	_, err := newDialector(&config.DatabaseConfig{Driver: "postgres"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewDialector_DefaultsToMySQL(t *testing.T) {
	d, err := newDialector(&config.DatabaseConfig{Host: "localhost", Port: 3306, Database: "assetflow"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}

func TestInit_SQLiteFile(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:   DriverSQLite,
		Database: filepath.Join(t.TempDir(), "assetflow.db"),
	}

	require.NoError(t, Init(cfg))
	t.Cleanup(func() { _ = Close() })

	require.NotNil(t, Get())
	var one int
	require.NoError(t, Get().Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	require.NoError(t, Close())
	assert.Nil(t, Get())
}
