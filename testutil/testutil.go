package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gauri-theanalyst/quick-insight-pulse/config"
	"github.com/Gauri-theanalyst/quick-insight-pulse/database"
	"github.com/Gauri-theanalyst/quick-insight-pulse/store"
)

// OpenTestDB opens a fresh migrated SQLite database in a per-test temp dir.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := TestConfig()
	cfg.DBUrl = filepath.Join(t.TempDir(), "test.sqlite")

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// NewTestStore returns a store backed by a fresh test database.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(OpenTestDB(t))
}

// TestConfig returns a standard test configuration.
func TestConfig() config.Config {
	return config.Config{
		Addr:        "localhost:8080",
		PublicURL:   "http://localhost:8080",
		TokenSecret: "test-token-secret",
		TokenTTL:    time.Minute,
	}
}
