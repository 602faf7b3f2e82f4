package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch() *Batch {
	return NewBatch(
		[]string{"DATE", "HS CODE", "GOODS DESCRIPTION"},
		[]Record{
			{"DATE": "2021-01-05", "HS CODE": "7323", "GOODS DESCRIPTION": "HOLDER"},
			{"HS CODE": "7324"},
		},
	)
}

func TestBatch_FirstPresent(t *testing.T) {
	b := newTestBatch()

	col, ok := b.FirstPresent("Description", "GOODS DESCRIPTION", "HS CODE")
	require.True(t, ok)
	assert.Equal(t, "GOODS DESCRIPTION", col)

	_, ok = b.FirstPresent("nope", "also nope")
	assert.False(t, ok)
}

func TestBatch_AddAndDropColumn(t *testing.T) {
	b := newTestBatch()

	b.AddColumn("Category")
	b.AddColumn("Category")
	assert.Equal(t, []string{"DATE", "HS CODE", "GOODS DESCRIPTION", "Category"}, b.Columns)

	b.DropColumn("HS CODE", "missing")
	assert.Equal(t, []string{"DATE", "GOODS DESCRIPTION", "Category"}, b.Columns)
	for _, rec := range b.Records {
		assert.False(t, rec.Has("HS CODE"))
	}
}

func TestBatch_RenameColumn(t *testing.T) {
	b := newTestBatch()

	b.RenameColumn("DATE", "Date_of_Shipment")

	assert.Equal(t, []string{"Date_of_Shipment", "HS CODE", "GOODS DESCRIPTION"}, b.Columns)
	assert.Equal(t, "2021-01-05", b.Records[0]["Date_of_Shipment"])
	assert.False(t, b.Records[1].Has("Date_of_Shipment"))

	b.RenameColumn("missing", "other")
	assert.Len(t, b.Columns, 3)
}

func TestBatch_RenameOntoExistingColumnReplacesIt(t *testing.T) {
	b := NewBatch([]string{"a", "b"}, []Record{{"a": "1", "b": "2"}})

	b.RenameColumn("a", "b")

	assert.Equal(t, []string{"b"}, b.Columns)
	assert.Equal(t, Record{"b": "1"}, b.Records[0])
}

func TestBatch_Clone(t *testing.T) {
	b := newTestBatch()
	clone := b.Clone()

	clone.AddColumn("X")
	clone.Records[0]["HS CODE"] = "9999"

	assert.Len(t, b.Columns, 3)
	assert.Equal(t, "7323", b.Records[0]["HS CODE"])
	assert.Equal(t, 2, clone.Len())
}
