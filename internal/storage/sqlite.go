package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"           // Postgres driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DefaultTable is the table processed shipments are loaded into.
const DefaultTable = "trade_data"

// Config selects and locates the database.
type Config struct {
	Driver string
	DSN    string
	Path   string
}

// Store is a handle on the shipment database.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database described by cfg. SQLite databases are
// created on first use, including their parent directory.
func Open(cfg Config) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverSQLite, "sqlite":
		return openSQLite(cfg)
	case DriverPostgres, "postgresql":
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
}

func openSQLite(cfg Config) (*Store, error) {
	dsn := cfg.DSN
	if dsn == "" {
		if err := validateString(cfg.Path, "path"); err != nil {
			return nil, err
		}

		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.Path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serialises writers; one connection keeps transactions simple.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, dialect: sqliteDialect}, nil
}

func openPostgres(cfg Config) (*Store, error) {
	if err := validateString(cfg.DSN, "dsn"); err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverPostgres, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, dialect: postgresDialect}, nil
}

// Driver reports the database driver in use.
func (s *Store) Driver() string {
	return s.dialect.driver
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
