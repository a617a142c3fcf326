package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnsupportedScheme(t *testing.T) {
	_, err := New(context.Background(), "mysql://localhost/heart", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database URL scheme")
}

func TestNew_SQLiteEmptyPath(t *testing.T) {
	_, err := New(context.Background(), "sqlite://", 1)
	require.Error(t, err)
}

func TestNew_SQLiteSchemaIsIdempotent(t *testing.T) {
	db := NewSQLiteTestDB(t)
	assert.Equal(t, DriverSQLite, db.Driver())
	assert.Nil(t, db.GetPool())
	require.NotNil(t, db.GetSQL())

	// Running the schema a second time must not fail
	require.NoError(t, db.initializeSchema(context.Background()))

	for _, table := range []string{"admin", "users", "predictions"} {
		var name string
		err := db.GetSQL().QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestHealth(t *testing.T) {
	db := NewSQLiteTestDB(t)
	assert.NoError(t, db.Health(context.Background()))

	var empty *Database
	assert.Error(t, empty.Health(context.Background()))
	assert.Error(t, NewDatabaseFromPool(nil).Health(context.Background()))
}

func TestPostgresSchema(t *testing.T) {
	WithTestDB(t, func(tdb *TestDB) {
		db := NewDatabaseFromPool(tdb.Pool)
		require.NoError(t, db.initializeSchema(context.Background()))
		assert.NoError(t, db.Health(context.Background()))
	})
}
