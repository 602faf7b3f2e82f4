// Package features derives business fields from cleaned and parsed shipments.
package features

import (
	"github.com/Veraticus/tradeflow/internal/classification"
	"github.com/Veraticus/tradeflow/internal/cleaning"
	"github.com/Veraticus/tradeflow/internal/model"
)

// CalculateGrandTotal returns a copy of batch with Grand_Total_INR = total value + duty.
// Missing value or duty columns are added as zero columns first.
func CalculateGrandTotal(batch *model.Batch) *model.Batch {
	out := batch.Clone()

	for _, col := range []string{model.ColumnTotalValueINR, model.ColumnDutyPaidINR} {
		out.AddColumn(col)
		for _, rec := range out.Records {
			rec.Set(col, cleaning.ToNumberOrZero(rec[col]))
		}
	}

	out.AddColumn(model.ColumnGrandTotalINR)
	for _, rec := range out.Records {
		total, _ := rec.Float(model.ColumnTotalValueINR)
		duty, _ := rec.Float(model.ColumnDutyPaidINR)
		rec.Set(model.ColumnGrandTotalINR, total+duty)
	}

	return out
}

// EngineerFeatures computes the grand total and assigns categories.
func EngineerFeatures(batch *model.Batch, categorizer *classification.Categorizer) *model.Batch {
	if categorizer == nil {
		categorizer = classification.NewDefaultCategorizer()
	}
	return categorizer.AssignCategories(CalculateGrandTotal(batch))
}
