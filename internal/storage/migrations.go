package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx, dialect) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Create shipment table",
		Up: func(tx *sql.Tx, d dialect) error {
			if _, err := tx.Exec(d.createTableSQL(DefaultTable)); err != nil {
				return fmt.Errorf("failed to create %s: %w", DefaultTable, err)
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index shipments by date, code and category",
		Up: func(tx *sql.Tx, _ dialect) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_trade_data_date ON trade_data(date_of_shipment)`,
				`CREATE INDEX IF NOT EXISTS idx_trade_data_hs_code ON trade_data(hs_code)`,
				`CREATE INDEX IF NOT EXISTS idx_trade_data_category ON trade_data(category, sub_category)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.dialect.schemaVersion(ctx, s.db)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx, s.dialect); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if setErr := s.dialect.setSchemaVersion(ctx, tx, migration.Version); setErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", setErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.dialect.schemaVersion(ctx, s.db)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("%w: expected %d, got %d", ErrSchemaVersionDrift, ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion reports the applied schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.dialect.schemaVersion(ctx, s.db)
}
