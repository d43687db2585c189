// Package infratest provides a migrated in-memory database for tests.
package infratest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"photowalk/internal/infra"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infra.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
