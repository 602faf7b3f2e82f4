package model

// Batch is an ordered set of records sharing a column list.
// Columns preserves the source order plus derived columns in the order they were added.
type Batch struct {
	Columns []string
	Records []Record
}

// NewBatch creates a batch from the given columns and records.
func NewBatch(columns []string, records []Record) *Batch {
	if records == nil {
		records = []Record{}
	}
	return &Batch{
		Columns: append([]string(nil), columns...),
		Records: records,
	}
}

// Len returns the number of records.
func (b *Batch) Len() int {
	return len(b.Records)
}

// HasColumn reports whether the batch schema contains name.
func (b *Batch) HasColumn(name string) bool {
	return b.columnIndex(name) >= 0
}

// FirstPresent returns the first of names that exists in the schema.
func (b *Batch) FirstPresent(names ...string) (string, bool) {
	for _, name := range names {
		if b.HasColumn(name) {
			return name, true
		}
	}
	return "", false
}

// AddColumn appends name to the schema if it is not already there.
func (b *Batch) AddColumn(name string) {
	if !b.HasColumn(name) {
		b.Columns = append(b.Columns, name)
	}
}

// DropColumn removes the named columns from the schema and every record.
func (b *Batch) DropColumn(names ...string) {
	for _, name := range names {
		idx := b.columnIndex(name)
		if idx < 0 {
			continue
		}
		b.Columns = append(b.Columns[:idx], b.Columns[idx+1:]...)
		for _, rec := range b.Records {
			delete(rec, name)
		}
	}
}

// RenameColumn renames from to to in place, keeping its schema position.
// It is a no-op when from is missing.
func (b *Batch) RenameColumn(from, to string) {
	idx := b.columnIndex(from)
	if idx < 0 || from == to {
		return
	}
	if b.HasColumn(to) {
		b.DropColumn(to)
		idx = b.columnIndex(from)
	}
	b.Columns[idx] = to
	for _, rec := range b.Records {
		if v, ok := rec[from]; ok {
			rec[to] = v
			delete(rec, from)
		}
	}
}

// Clone deep-copies the schema and records.
func (b *Batch) Clone() *Batch {
	records := make([]Record, len(b.Records))
	for i, rec := range b.Records {
		records[i] = rec.Clone()
	}
	return &Batch{
		Columns: append([]string(nil), b.Columns...),
		Records: records,
	}
}

func (b *Batch) columnIndex(name string) int {
	for i, col := range b.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
