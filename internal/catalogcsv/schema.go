package catalogcsv

// The exchange format is a single flat CSV holding devices, attribute options
// and evaluation criteria. Rows are discriminated by their first column;
// columns are positional and unused cells stay empty.
//
// Criterion rows reuse columns 5-8 for text, discount value, brand list and
// active flag.
const (
	rowTypeDevice          = "Device"
	rowTypeAttribute       = "Attribute"
	rowTypeAttributeOption = "Attribute Option"
	rowTypeCriterion       = "Evaluation Criterion"
)

const (
	colType = iota
	colDeviceName
	colBrand
	colBasePrice
	colAttributeName
	colDiscountType
	colOptionLabel
	colDiscountValue
	colAttributeID

	columnCount
)

// criterion rows overlay columns 5-8
const (
	colCriterionText   = colAttributeName
	colCriterionValue  = colDiscountType
	colCriterionBrands = colOptionLabel
	colCriterionActive = colDiscountValue
)

func headerRow() []string {
	return []string{
		"type",
		"device_name",
		"brand",
		"base_price",
		"attribute_name",
		"discount_type",
		"option_label",
		"discount_value",
		"attribute_id",
	}
}

// padRow widens short rows so positional access never panics.
func padRow(row []string) []string {
	if len(row) >= columnCount {
		return row
	}
	padded := make([]string, columnCount)
	copy(padded, row)
	return padded
}
