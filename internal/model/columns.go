package model

// Source column names as they appear in raw shipment exports.
const (
	ColumnPortCode         = "PORT CODE"
	ColumnDate             = "DATE"
	ColumnIEC              = "IEC"
	ColumnHSCode           = "HS CODE"
	ColumnGoodsDescription = "GOODS DESCRIPTION"
	ColumnMasterCategory   = "Master category"
	ColumnModelName        = "Model Name"
	ColumnModelNumber      = "Model Number"
	ColumnCapacity         = "Capacity"
	ColumnQty              = "Qty"
	ColumnUnitOfMeasure    = "Unit of measure"
	ColumnUnitOfMeasureDup = "Unit of measure.1"
	ColumnPrice            = "Price"
	ColumnQuantity         = "QUANTITY"
	ColumnUnit             = "UNIT"
	ColumnUnitPriceINR     = "UNIT PRICE_INR"
	ColumnTotalValueINR    = "TOTAL VALUE_INR"
	ColumnDutyPaidINR      = "DUTY PAID_INR"
	ColumnUnitPriceUSD     = "UNIT PRICE_USD"
	ColumnTotalValueUSD    = "TOTAL VALUE_USD"
)

// Derived column names appended by the pipeline.
const (
	ColumnDateOfShipment     = "Date_of_Shipment"
	ColumnYear               = "Year"
	ColumnMonth              = "Month"
	ColumnQuarter            = "Quarter"
	ColumnModelNameParsed    = "Model_Name_Parsed"
	ColumnModelNumberParsed  = "Model_Number_Parsed"
	ColumnCapacityParsed     = "Capacity_Parsed"
	ColumnMaterialTypeParsed = "Material_Type_Parsed"
	ColumnEmbeddedQuantity   = "Embedded_Quantity_Parsed"
	ColumnUnitPriceUSDParsed = "Unit_Price_USD_Parsed"
	ColumnModelNameFinal     = "Model_Name_Final"
	ColumnModelNumberFinal   = "Model_Number_Final"
	ColumnCapacityFinal      = "Capacity_Final"
	ColumnGrandTotalINR      = "Grand_Total_INR"
	ColumnCategory           = "Category"
	ColumnSubCategory        = "Sub_Category"
)

// Alternative source names per logical field, in lookup order.
var (
	DateAliases        = []string{ColumnDate, "Date of Shipment", "Date"}
	DescriptionAliases = []string{ColumnGoodsDescription, "Goods Description", "Description"}
	HSCodeAliases      = []string{ColumnHSCode, "HSN Code", "HSN_CODE", "HS_CODE"}
)
