// Package dbtest opens throwaway SQLite databases with the service schema applied.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"social-service/internal/db"
)

func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.Connect(db.DriverSQLite, filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}
