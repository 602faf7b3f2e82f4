package cleaning

import (
	"log/slog"

	"github.com/Veraticus/tradeflow/internal/model"
)

// NumericColumns are coerced to numbers with missing values filled with zero.
var NumericColumns = []string{
	model.ColumnTotalValueINR,
	model.ColumnDutyPaidINR,
	model.ColumnQuantity,
}

// UnitColumns are normalized through the unit synonym table.
var UnitColumns = []string{
	model.ColumnUnit,
	model.ColumnUnitOfMeasure,
}

// CleanBaseData returns a cleaned copy of batch. Each step runs only when its
// column is present; parse failures never abort cleaning.
func CleanBaseData(batch *model.Batch) *model.Batch {
	out := batch.Clone()

	cleanDates(out)
	for _, col := range NumericColumns {
		cleanNumeric(out, col)
	}
	for _, col := range UnitColumns {
		cleanUnits(out, col)
	}

	return out
}

// cleanDates parses the first present date column and derives Year, Month,
// Quarter and Date_of_Shipment. Unparsable dates leave all of them absent.
func cleanDates(batch *model.Batch) {
	dateCol, ok := batch.FirstPresent(model.DateAliases...)
	if !ok {
		return
	}

	for _, col := range []string{model.ColumnYear, model.ColumnMonth, model.ColumnQuarter, model.ColumnDateOfShipment} {
		batch.AddColumn(col)
	}

	invalid := 0
	for _, rec := range batch.Records {
		raw, present := rec.Get(dateCol)
		t, parsed := ParseDate(raw)
		if !parsed {
			if present {
				invalid++
			}
			for _, col := range []string{dateCol, model.ColumnYear, model.ColumnMonth, model.ColumnQuarter, model.ColumnDateOfShipment} {
				rec.Set(col, nil)
			}
			continue
		}

		rec.Set(dateCol, t)
		rec.Set(model.ColumnYear, t.Year())
		rec.Set(model.ColumnMonth, int(t.Month()))
		rec.Set(model.ColumnQuarter, Quarter(t))
		rec.Set(model.ColumnDateOfShipment, t)
	}

	if invalid > 0 {
		slog.Warn("Unparsable dates set to missing", "column", dateCol, "count", invalid)
	}
}

func cleanNumeric(batch *model.Batch, col string) {
	if !batch.HasColumn(col) {
		return
	}

	filled := 0
	for _, rec := range batch.Records {
		v, ok := ToNumber(rec[col])
		if !ok {
			filled++
		}
		rec.Set(col, v)
	}

	if filled > 0 {
		slog.Debug("Filled missing numeric values with zero", "column", col, "count", filled)
	}
}

func cleanUnits(batch *model.Batch, col string) {
	if !batch.HasColumn(col) {
		return
	}

	for _, rec := range batch.Records {
		unit, ok := rec.String(col)
		if !ok {
			continue
		}
		rec.Set(col, NormalizeUnit(unit))
	}
}
