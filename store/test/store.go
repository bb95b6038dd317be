// Package test provides a throwaway on-disk sqlite store for tests.
package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/posawiki/posawiki/internal/profile"
	"github.com/posawiki/posawiki/store"
	"github.com/posawiki/posawiki/store/db"
)

// NewTestingStore creates a fresh sqlite-backed store in a temp dir and
// applies the latest schema.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	dir := t.TempDir()
	testProfile := &profile.Profile{
		Mode:    "dev",
		Driver:  "sqlite",
		Data:    dir,
		DSN:     fmt.Sprintf("%s/posawiki_test.db", dir),
		Version: "test",
	}

	dbDriver, err := db.NewDBDriver(testProfile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	st := store.New(dbDriver, testProfile)
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("failed to close test store: %v", err)
		}
	})
	return st
}
