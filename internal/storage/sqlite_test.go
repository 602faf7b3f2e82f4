package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore opens a migrated SQLite store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "trade.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func tableRowCount(t *testing.T, store *Store, table string) int {
	t.Helper()

	n, err := store.CountRows(context.Background(), table)
	require.NoError(t, err)
	return n
}

func TestOpen(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		cfg     Config
	}{
		{
			name: "sqlite with nested path",
			cfg:  Config{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), "a", "b", "trade.db")},
		},
		{
			name: "driver defaults to sqlite",
			cfg:  Config{Path: filepath.Join(t.TempDir(), "trade.db")},
		},
		{
			name:    "sqlite without path",
			cfg:     Config{Driver: "sqlite3"},
			wantErr: ErrEmptyString,
		},
		{
			name:    "postgres without dsn",
			cfg:     Config{Driver: "postgres"},
			wantErr: ErrEmptyString,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Driver: "oracle"},
			wantErr: ErrUnsupportedDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DriverSQLite, store.Driver())
			require.NoError(t, store.Close())
		})
	}
}

func TestMigrate(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Re-running is a no-op.
	require.NoError(t, store.Migrate(ctx))

	cols, err := store.TableColumns(ctx, DefaultTable)
	require.NoError(t, err)
	require.Len(t, cols, len(tableSchema)+3)
	assert.Equal(t, "id", cols[0])
	assert.Contains(t, cols, "grand_total_inr")
	assert.Contains(t, cols, "sub_category")
	assert.Equal(t, "updated_at", cols[len(cols)-1])

	var indexCount int
	require.NoError(t, store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name LIKE 'idx_trade_data_%'
	`).Scan(&indexCount))
	assert.Equal(t, 3, indexCount)
}

func TestTableColumns_Errors(t *testing.T) {
	store := createTestStore(t)

	_, err := store.TableColumns(context.Background(), "missing_table")
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = store.TableColumns(context.Background(), "bad name;")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestDialect_InsertSQL(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO "t" ("a", "b") VALUES (?, ?), (?, ?)`,
		sqliteDialect.insertSQL("t", []string{"a", "b"}, 2),
	)
	assert.Equal(t,
		`INSERT INTO "t" ("a", "b") VALUES ($1, $2), ($3, $4)`,
		postgresDialect.insertSQL("t", []string{"a", "b"}, 2),
	)
}

func TestDialect_CreateTableSQL(t *testing.T) {
	pg := postgresDialect.createTableSQL("trade_data")
	assert.Contains(t, pg, "id SERIAL PRIMARY KEY")
	assert.Contains(t, pg, `"grand_total_inr" DOUBLE PRECISION`)
	assert.Contains(t, pg, `"date_of_shipment" TIMESTAMP`)

	lite := sqliteDialect.createTableSQL("trade_data")
	assert.Contains(t, lite, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, lite, `"year" INTEGER`)
}
