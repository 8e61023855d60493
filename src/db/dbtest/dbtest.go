// Package dbtest opens throwaway census databases for tests.
package dbtest

import (
	"testing"

	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory SQLite database with foreign keys on.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.New(config.OptDatabase("sqlite", "file::memory:?_foreign_keys=on"))
	gdb, err := db.Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
