package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benrueckert/koda-flashcard-app/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, configured the same way the production database is.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database.DB
}
