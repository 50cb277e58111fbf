package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"Votocon/internal/core/users"
	"Votocon/internal/db/migrations"
	"Votocon/internal/db/postgres"
)

// setupTestDB connects to TEST_DATABASE_URL, migrates, and truncates all tables.
// Tests are skipped when no test database is configured.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := postgres.Open(context.Background(), dsn)
	require.NoError(t, err, "failed to connect to test database")

	require.NoError(t, migrations.Up(db.DB))

	_, err = db.Exec(`TRUNCATE votes, posts, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "failed to clean test data")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// createTestUser inserts a user with a unique email
func createTestUser(t *testing.T, db *sqlx.DB, name string) *users.User {
	t.Helper()

	email := fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano())
	user, err := postgres.NewUserRepository(db).Create(context.Background(), email, "not-a-real-hash")
	require.NoError(t, err)
	return user
}
