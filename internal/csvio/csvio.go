// Package csvio reads and writes shipment batches as CSV files.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/tradeflow/internal/model"
)

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// ReadFile reads a CSV file into a batch.
func ReadFile(path string) (*model.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	batch, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return batch, nil
}

// Read parses CSV from r. The header row defines the column order, empty cells
// are absent, and repeated header names get ".1", ".2" suffixes.
func Read(r io.Reader) (*model.Batch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := dedupeHeader(header)
	records := make([]model.Record, 0)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		rec := make(model.Record, len(columns))
		for i, value := range row {
			if i >= len(columns) || value == "" {
				continue
			}
			rec[columns[i]] = value
		}
		records = append(records, rec)
	}

	return model.NewBatch(columns, records), nil
}

func dedupeHeader(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)

		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			candidate := name + "." + strconv.Itoa(n)
			for containsName(header, candidate) {
				n++
				seen[name] = n + 1
				candidate = name + "." + strconv.Itoa(n)
			}
			name = candidate
		} else {
			seen[name] = 1
		}
		columns[i] = name
	}
	return columns
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if strings.TrimSpace(n) == name {
			return true
		}
	}
	return false
}

// WriteFile writes batch to path, creating parent directories as needed.
func WriteFile(path string, batch *model.Batch) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return Write(f, batch)
}

// Write renders batch as CSV. Absent values are written as empty cells.
func Write(w io.Writer, batch *model.Batch) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(batch.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(batch.Columns))
	for i, rec := range batch.Records {
		for j, col := range batch.Columns {
			v, _ := rec.String(col)
			row[j] = v
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
