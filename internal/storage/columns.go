package storage

import (
	"time"

	"github.com/Veraticus/tradeflow/internal/cleaning"
	"github.com/Veraticus/tradeflow/internal/model"
)

type columnKind int

const (
	kindText columnKind = iota
	kindInteger
	kindReal
	kindTimestamp
)

type tableColumn struct {
	Name string
	Kind columnKind
}

// tableSchema is the shipment table layout, excluding the managed id and
// audit timestamp columns.
var tableSchema = []tableColumn{
	{"port_code", kindText},
	{"date_of_shipment", kindTimestamp},
	{"year", kindInteger},
	{"month", kindInteger},
	{"quarter", kindInteger},
	{"iec", kindText},
	{"hs_code", kindText},
	{"goods_description", kindText},
	{"master_category", kindText},
	{"model_name", kindText},
	{"model_number", kindText},
	{"capacity", kindText},
	{"model_name_parsed", kindText},
	{"model_number_parsed", kindText},
	{"capacity_parsed", kindText},
	{"material_type_parsed", kindText},
	{"embedded_quantity_parsed", kindReal},
	{"unit_price_usd_parsed", kindReal},
	{"model_name_final", kindText},
	{"model_number_final", kindText},
	{"capacity_final", kindText},
	{"qty", kindReal},
	{"unit_of_measure", kindText},
	{"price", kindReal},
	{"quantity", kindReal},
	{"unit", kindText},
	{"unit_price_inr", kindReal},
	{"total_value_inr", kindReal},
	{"duty_paid_inr", kindReal},
	{"grand_total_inr", kindReal},
	{"unit_price_usd", kindReal},
	{"total_value_usd", kindReal},
	{"category", kindText},
	{"sub_category", kindText},
}

// managedColumns are populated by the database and never loaded.
var managedColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// droppedColumns never reach the database.
var droppedColumns = []string{model.ColumnUnitOfMeasureDup}

// columnMap translates pipeline column names to table column names.
var columnMap = map[string]string{
	model.ColumnPortCode:           "port_code",
	model.ColumnDateOfShipment:     "date_of_shipment",
	model.ColumnYear:               "year",
	model.ColumnMonth:              "month",
	model.ColumnQuarter:            "quarter",
	model.ColumnIEC:                "iec",
	model.ColumnHSCode:             "hs_code",
	model.ColumnGoodsDescription:   "goods_description",
	model.ColumnMasterCategory:     "master_category",
	model.ColumnModelName:          "model_name",
	model.ColumnModelNumber:        "model_number",
	model.ColumnCapacity:           "capacity",
	model.ColumnModelNameParsed:    "model_name_parsed",
	model.ColumnModelNumberParsed:  "model_number_parsed",
	model.ColumnCapacityParsed:     "capacity_parsed",
	model.ColumnMaterialTypeParsed: "material_type_parsed",
	model.ColumnEmbeddedQuantity:   "embedded_quantity_parsed",
	model.ColumnUnitPriceUSDParsed: "unit_price_usd_parsed",
	model.ColumnModelNameFinal:     "model_name_final",
	model.ColumnModelNumberFinal:   "model_number_final",
	model.ColumnCapacityFinal:      "capacity_final",
	model.ColumnQty:                "qty",
	model.ColumnUnitOfMeasure:      "unit_of_measure",
	model.ColumnPrice:              "price",
	model.ColumnQuantity:           "quantity",
	model.ColumnUnit:               "unit",
	model.ColumnUnitPriceINR:       "unit_price_inr",
	model.ColumnTotalValueINR:      "total_value_inr",
	model.ColumnDutyPaidINR:        "duty_paid_inr",
	model.ColumnGrandTotalINR:      "grand_total_inr",
	model.ColumnUnitPriceUSD:       "unit_price_usd",
	model.ColumnTotalValueUSD:      "total_value_usd",
	model.ColumnCategory:           "category",
	model.ColumnSubCategory:        "sub_category",
}

var columnKinds = func() map[string]columnKind {
	kinds := make(map[string]columnKind, len(tableSchema))
	for _, col := range tableSchema {
		kinds[col.Name] = col.Kind
	}
	return kinds
}()

// MapColumns returns a copy of batch with table column names. A raw DATE
// column becomes date_of_shipment unless the cleaned Date_of_Shipment is
// already present, in which case DATE is dropped. Unknown columns keep their
// names.
func MapColumns(batch *model.Batch) *model.Batch {
	out := batch.Clone()

	if out.HasColumn(model.ColumnDate) {
		if out.HasColumn(model.ColumnDateOfShipment) {
			out.DropColumn(model.ColumnDate)
		} else {
			out.RenameColumn(model.ColumnDate, model.ColumnDateOfShipment)
		}
	}
	out.DropColumn(droppedColumns...)

	for _, col := range append([]string(nil), out.Columns...) {
		if to, ok := columnMap[col]; ok {
			out.RenameColumn(col, to)
		}
	}
	return out
}

// PrepareBatch maps columns and coerces every value to its table type.
// Numeric columns are zero-filled, text columns are filled with "", and
// unparseable shipment dates become NULL.
func PrepareBatch(batch *model.Batch) *model.Batch {
	out := MapColumns(batch)

	for _, col := range out.Columns {
		kind, ok := columnKinds[col]
		if !ok {
			kind = kindText
		}
		for _, rec := range out.Records {
			rec[col] = coerce(kind, rec, col)
		}
	}
	return out
}

func coerce(kind columnKind, rec model.Record, col string) any {
	switch kind {
	case kindInteger:
		return int64(cleaning.ToNumberOrZero(rec[col]))
	case kindReal:
		return cleaning.ToNumberOrZero(rec[col])
	case kindTimestamp:
		t, ok := cleaning.ParseDate(rec[col])
		if !ok {
			return nil
		}
		return t.UTC().Truncate(time.Second)
	default:
		s, _ := rec.String(col)
		return s
	}
}
