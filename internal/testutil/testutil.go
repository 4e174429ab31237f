// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/database"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/logging"
)

var dbSeq atomic.Int64

// OpenDB opens a private in-memory SQLite database migrated the same way as
// production. It is closed when the test ends.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ugeltest%d?mode=memory&cache=shared&_foreign_keys=1", dbSeq.Add(1))
	db, err := database.Open(database.DriverSQLite, dsn, logging.Discard())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
