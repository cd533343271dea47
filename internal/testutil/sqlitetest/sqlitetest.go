// Package sqlitetest opens migrated in-memory ledger databases for tests.
package sqlitetest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"loan-ledger/internal/infrastructure/db"

	"gorm.io/gorm"
)

var seq atomic.Uint64

// Open returns a private shared-cache in-memory database with the ledger
// schema. It is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_test_%d?mode=memory&cache=shared", seq.Add(1))
	g, err := db.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(g); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := g.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return g
}
