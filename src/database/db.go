package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed schema_postgres.sql
var postgresSchema string

//go:embed schema_sqlite.sql
var sqliteSchema string

// Database holds either a PostgreSQL pool or a SQLite handle.
//
// Both are capped at maxConns connections. The dashboard is single-admin and
// the default of 1 serializes every statement through one connection, so there
// are never concurrent writers. Raising it requires row-level write handling.
type Database struct {
	driver string
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
}

// New opens the database named by databaseURL and creates the schema if absent.
// postgres:// and postgresql:// URLs use pgx; sqlite:// URLs use go-sqlite3.
func New(ctx context.Context, databaseURL string, maxConns int) (*Database, error) {
	if maxConns <= 0 {
		maxConns = 1
	}

	var (
		db  *Database
		err error
	)
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		db, err = openPostgres(ctx, databaseURL, maxConns)
	case strings.HasPrefix(databaseURL, "sqlite://"), strings.HasPrefix(databaseURL, "sqlite3://"):
		db, err = openSQLite(databaseURL, maxConns)
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %q", databaseURL)
	}
	if err != nil {
		return nil, err
	}

	if err := db.initializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func openPostgres(ctx context.Context, databaseURL string, maxConns int) (*Database, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = int32(maxConns)
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Database{driver: DriverPostgres, pool: pool}, nil
}

func openSQLite(databaseURL string, maxConns int) (*Database, error) {
	path := strings.TrimPrefix(strings.TrimPrefix(databaseURL, "sqlite3://"), "sqlite://")
	if path == "" {
		return nil, fmt.Errorf("sqlite URL has no path: %q", databaseURL)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on&_busy_timeout=5000"

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetConnMaxLifetime(0)

	return &Database{driver: DriverSQLite, sqlDB: sqlDB}, nil
}

// Close closes the underlying connections
func (db *Database) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.sqlDB != nil {
		_ = db.sqlDB.Close()
	}
}

// Driver returns DriverPostgres or DriverSQLite
func (db *Database) Driver() string {
	return db.driver
}

// GetPool returns the PostgreSQL pool (nil for SQLite)
func (db *Database) GetPool() *pgxpool.Pool {
	return db.pool
}

// GetSQL returns the SQLite handle (nil for PostgreSQL)
func (db *Database) GetSQL() *sql.DB {
	return db.sqlDB
}

// initializeSchema creates the admin, users and predictions tables if absent.
// There is no migration versioning.
func (db *Database) initializeSchema(ctx context.Context) error {
	var err error
	switch db.driver {
	case DriverPostgres:
		_, err = db.pool.Exec(ctx, postgresSchema)
	case DriverSQLite:
		_, err = db.sqlDB.ExecContext(ctx, sqliteSchema)
	}
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	log.Info().Str("driver", db.driver).Msg("database schema initialized")
	return nil
}

// Health checks if the database is healthy
func (db *Database) Health(ctx context.Context) error {
	if db == nil || (db.pool == nil && db.sqlDB == nil) {
		return fmt.Errorf("database connection not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if db.pool != nil {
		return db.pool.Ping(ctx)
	}
	return db.sqlDB.PingContext(ctx)
}
