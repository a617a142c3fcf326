package app

import (
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/database"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories/postgres"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories/sqlite"
)

// StoreFor returns the repositories backed by db's driver
func StoreFor(db *database.Database) (*repositories.Store, error) {
	switch db.Driver() {
	case database.DriverPostgres:
		return postgres.NewStore(db.GetPool()), nil
	case database.DriverSQLite:
		return sqlite.NewStore(db.GetSQL()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver())
	}
}
