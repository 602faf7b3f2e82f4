package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dialect captures the SQL differences between the supported databases.
type dialect struct {
	driver     string
	primaryKey string
	types      map[columnKind]string
	positional bool
}

var sqliteDialect = dialect{
	driver:     DriverSQLite,
	primaryKey: "id INTEGER PRIMARY KEY AUTOINCREMENT",
	types: map[columnKind]string{
		kindText:      "TEXT",
		kindInteger:   "INTEGER",
		kindReal:      "REAL",
		kindTimestamp: "DATETIME",
	},
}

var postgresDialect = dialect{
	driver:     DriverPostgres,
	primaryKey: "id SERIAL PRIMARY KEY",
	types: map[columnKind]string{
		kindText:      "TEXT",
		kindInteger:   "INTEGER",
		kindReal:      "DOUBLE PRECISION",
		kindTimestamp: "TIMESTAMP",
	},
	positional: true,
}

// placeholder returns the bind parameter for the n-th argument, counting from 1.
func (d dialect) placeholder(n int) string {
	if d.positional {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

// createTableSQL renders the shipment table definition for table.
func (d dialect) createTableSQL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\t%s", quoteIdent(table), d.primaryKey)
	for _, col := range tableSchema {
		fmt.Fprintf(&b, ",\n\t%s %s", quoteIdent(col.Name), d.types[col.Kind])
	}
	b.WriteString(",\n\tcreated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP")
	b.WriteString(",\n\tupdated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP\n)")
	return b.String()
}

// insertSQL renders a multi-row insert of rows rows into columns.
func (d dialect) insertSQL(table string, columns []string, rows int) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", quoteIdent(table), strings.Join(quoted, ", "))

	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// tableColumns lists the columns of table in declaration order.
func (d dialect) tableColumns(ctx context.Context, q querier, table string) ([]string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if d.positional {
		rows, err = q.QueryContext(ctx,
			`SELECT column_name FROM information_schema.columns
			 WHERE table_name = $1 ORDER BY ordinal_position`, table)
	} else {
		rows, err = q.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return columns, nil
}

// schemaVersion reads the applied migration version.
func (d dialect) schemaVersion(ctx context.Context, q querier) (int, error) {
	var version int
	if !d.positional {
		err := q.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
		return version, err
	}

	if _, err := q.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return 0, err
	}
	err := q.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	return version, err
}

// setSchemaVersion records version as applied.
func (d dialect) setSchemaVersion(ctx context.Context, q querier, version int) error {
	if !d.positional {
		_, err := q.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version))
		return err
	}
	_, err := q.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES ($1)", version)
	return err
}
