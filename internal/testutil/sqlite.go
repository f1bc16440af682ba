// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/baharkarakas/bloglist-backend/internal/db"
)

// NewSQLite returns a migrated in-memory database private to the calling test.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqlDB, err := db.OpenSQLite(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.RunMigrations(context.Background(), sqlDB, "sqlite"); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return sqlDB
}
