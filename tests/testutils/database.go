package testutils

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"lookup-tracker/db"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func SetupTestDatabase(t *testing.T) (*sql.DB, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	testDB, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=10000&_foreign_keys=on")
	require.NoError(t, err)

	err = db.InitializeSchema(testDB)
	require.NoError(t, err)

	cleanup := func() {
		testDB.Close()
		os.RemoveAll(tempDir)
	}

	return testDB, cleanup
}

func SetupTestRepository(t *testing.T) (*db.SQLiteSearchRepository, func()) {
	testDB, cleanup := SetupTestDatabase(t)
	return db.NewSQLiteSearchRepository(testDB), cleanup
}
