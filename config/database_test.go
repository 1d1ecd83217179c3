package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenDBSQLite(t *testing.T) {
	cfg := &Config{DBDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "mood.db")}
	db, err := OpenDB(cfg, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpenDBUnknownDriver(t *testing.T) {
	_, err := OpenDB(&Config{DBDriver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}
