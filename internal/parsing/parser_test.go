package parsing

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/tradeflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	batch := model.NewBatch(
		[]string{"GOODS DESCRIPTION", "Model Name", "Capacity"},
		[]model.Record{
			{
				"GOODS DESCRIPTION": "STAINLESS STEEL BOTTLE HOLDER AM-967 QTY: 100 PCS USD 1.50 PER PCS",
				"Model Name":        "OLD-1",
			},
			{
				"GOODS DESCRIPTION": "PLAIN BASKET",
				"Model Name":        "TH5170",
				"Capacity":          "5",
			},
			{},
		},
	)

	out, err := NewParser().Parse(context.Background(), batch)
	require.NoError(t, err)

	for _, col := range ParsedColumns {
		assert.True(t, out.HasColumn(col), col)
	}
	assert.False(t, batch.HasColumn(model.ColumnModelNameFinal), "input batch must not be mutated")

	first := out.Records[0]
	assert.Equal(t, "AM-967", first[model.ColumnModelNameParsed])
	assert.Equal(t, "AM-967", first[model.ColumnModelNameFinal])
	assert.Equal(t, "STAINLESS_STEEL", first[model.ColumnMaterialTypeParsed])
	assert.Equal(t, 100.0, first[model.ColumnEmbeddedQuantity])
	assert.Equal(t, 1.5, first[model.ColumnUnitPriceUSDParsed])

	second := out.Records[1]
	assert.False(t, second.Has(model.ColumnModelNameParsed))
	assert.Equal(t, "TH5170", second[model.ColumnModelNameFinal])
	assert.Equal(t, "5", second[model.ColumnCapacityFinal])
	assert.False(t, second.Has(model.ColumnModelNumberFinal))

	third := out.Records[2]
	for _, col := range ParsedColumns {
		assert.False(t, third.Has(col), col)
	}
}

func TestParser_MissingDescriptionColumn(t *testing.T) {
	batch := model.NewBatch([]string{"HS CODE"}, []model.Record{{"HS CODE": "7323"}})

	out, err := NewParser().Parse(context.Background(), batch)
	require.NoError(t, err)

	assert.Same(t, batch, out)
	assert.Equal(t, []string{"HS CODE"}, out.Columns)
}

func TestParser_AlternativeDescriptionColumn(t *testing.T) {
	batch := model.NewBatch([]string{"Description"}, []model.Record{{"Description": "COPPER HOOK"}})

	out, err := ParseGoodsDescription(batch)
	require.NoError(t, err)

	assert.Equal(t, "COPPER", out.Records[0][model.ColumnMaterialTypeParsed])
}

func TestParser_ParallelMatchesSequential(t *testing.T) {
	descriptions := []string{
		"STEEL CUTLERY 10PCS SET QTY: 600 PCS USD 2.03 PER PCS",
		"SPRINKLER (RYX-02-020)",
		"",
		"HOLDER (2628) MILD STEEL",
		"WATER BOTTLE 750ML $0.5 PER PCS",
	}
	records := make([]model.Record, 0, 103)
	for i := 0; i < 103; i++ {
		records = append(records, model.Record{
			"GOODS DESCRIPTION": descriptions[i%len(descriptions)],
			"Model Number":      fmt.Sprintf("N-%d", i),
		})
	}
	batch := model.NewBatch([]string{"GOODS DESCRIPTION", "Model Number"}, records)

	sequential, err := NewParser().Parse(context.Background(), batch)
	require.NoError(t, err)

	parallel, err := NewParser(WithWorkers(4)).Parse(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestParser_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := model.NewBatch([]string{"GOODS DESCRIPTION"}, []model.Record{{"GOODS DESCRIPTION": "HOOK"}})

	_, err := NewParser().Parse(ctx, batch)
	require.ErrorIs(t, err, context.Canceled)
}
