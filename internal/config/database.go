package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/Veraticus/tradeflow/internal/common"
	"github.com/Veraticus/tradeflow/internal/storage"
	"github.com/spf13/viper"
)

// DefaultDatabasePath is the SQLite file used when nothing else is configured.
const DefaultDatabasePath = "$HOME/.local/share/tradeflow/trade.db"

// DatabaseConfig locates the database that processed shipments load into.
type DatabaseConfig struct {
	Driver   string
	DSN      string
	Path     string
	Table    string
	IfExists string
}

// Storage returns the storage connection settings.
func (c DatabaseConfig) Storage() storage.Config {
	return storage.Config{Driver: c.Driver, DSN: c.DSN, Path: c.Path}
}

// LoadDatabaseConfig loads database configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or TRADEFLOW_ env vars)
// 2. The DB_USER, DB_PASSWORD, DB_HOST, DB_PORT and DB_NAME environment variables
// 3. Default values
func LoadDatabaseConfig(v *viper.Viper) (DatabaseConfig, error) {
	cfg := DatabaseConfig{
		Driver:   strings.ToLower(v.GetString("database.driver")),
		DSN:      v.GetString("database.dsn"),
		Path:     v.GetString("database.path"),
		Table:    v.GetString("database.table"),
		IfExists: v.GetString("database.if_exists"),
	}

	envDSN := postgresDSNFromEnv()
	if cfg.Driver == "" {
		cfg.Driver = storage.DriverSQLite
		if cfg.DSN == "" && envDSN != "" {
			cfg.Driver = storage.DriverPostgres
		}
	}
	if cfg.Driver == storage.DriverPostgres && cfg.DSN == "" {
		cfg.DSN = envDSN
	}

	if cfg.Path == "" {
		cfg.Path = DefaultDatabasePath
	}
	cfg.Path = ExpandPath(cfg.Path)

	if cfg.Table == "" {
		cfg.Table = storage.DefaultTable
	}
	if cfg.IfExists == "" {
		cfg.IfExists = string(storage.IfExistsAppend)
	}

	if err := cfg.Validate(); err != nil {
		return DatabaseConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can open a database.
func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case storage.DriverSQLite:
	case storage.DriverPostgres:
		if c.DSN == "" {
			return fmt.Errorf("%w: database.dsn or DB_HOST/DB_NAME required for postgres", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: database.driver %q", common.ErrInvalidConfig, c.Driver)
	}

	if _, err := storage.ParseIfExists(c.IfExists); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return nil
}

// postgresDSNFromEnv builds a connection URL from the DB_* variables, or
// returns "" when host or database name is missing.
func postgresDSNFromEnv() string {
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	if host == "" || name == "" {
		return ""
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}
	if user := os.Getenv("DB_USER"); user != "" {
		if password, ok := os.LookupEnv("DB_PASSWORD"); ok {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	if mode := os.Getenv("DB_SSLMODE"); mode != "" {
		u.RawQuery = url.Values{"sslmode": {mode}}.Encode()
	}
	return u.String()
}
