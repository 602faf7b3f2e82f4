// Package testutil provides shared fixtures for pipeline and command tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tradeflow/internal/storage"
)

// RawShipmentsCSV is a two-row raw import file. The first row carries every
// parseable detail; the second has no code and no description.
const RawShipmentsCSV = `PORT CODE,DATE,IEC,HS CODE,GOODS DESCRIPTION,Model Name,QUANTITY,UNIT,TOTAL VALUE_INR,DUTY PAID_INR,Unit of measure,Unit of measure
INNSA1,2021-01-05,IEC1,73239100,STAINLESS STEEL BOTTLE HOLDER QTY: 100 PCS USD 1.50 PER PCS,,100,Nos,12500,2250.5,Nos,Nos
INNSA1,not a date,IEC2,,,OLD-1,,SETS,,,SETS,SETS
`

// SetupTestStore opens a migrated SQLite store in a temp directory and closes
// it when the test ends.
func SetupTestStore(t *testing.T) (*storage.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trade.db")
	store, err := storage.Open(storage.Config{Driver: storage.DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return store, path
}

// RowCount opens the SQLite database at path and counts the rows of table.
func RowCount(t *testing.T, path, table string) int {
	t.Helper()

	store, err := storage.Open(storage.Config{Driver: storage.DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = store.Close() }()

	n, err := store.CountRows(context.Background(), table)
	if err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

// WriteFile writes content to name under dir, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
