package delivery

import (
	"strings"

	"github.com/zeebo/errs"
)

// Column names of the delivery log.
const (
	ColumnDeliveryPersonID = "Delivery Person ID"
	ColumnCustomerID       = "Customer ID"
	ColumnDeliveryDays     = "Delivery Days"
	ColumnMonthlyBilling   = "Monthly Billing (Estimated)"
	ColumnWeeklyBilling    = "Weekly Billing (Estimated)"
	ColumnIndividualCost   = "Individual Cost (Estimated)"
)

const (
	colDeliveryPersonID = iota
	colCustomerID
	colDeliveryDays
	colMonthlyBilling
	colWeeklyBilling
	colIndividualCost
	numColumns
)

// RequiredColumns lists the columns every delivery log must have, in
// canonical order.
var RequiredColumns = [numColumns]string{
	colDeliveryPersonID: ColumnDeliveryPersonID,
	colCustomerID:       ColumnCustomerID,
	colDeliveryDays:     ColumnDeliveryDays,
	colMonthlyBilling:   ColumnMonthlyBilling,
	colWeeklyBilling:    ColumnWeeklyBilling,
	colIndividualCost:   ColumnIndividualCost,
}

// SchemaError is the class of errors returned when the input is missing
// required columns.
var SchemaError = errs.Class("schema")

// MissingColumnsError lists the required columns absent from a header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	quoted := make([]string, 0, len(e.Columns))
	for _, column := range e.Columns {
		quoted = append(quoted, `"`+column+`"`)
	}
	return "missing required columns: " + strings.Join(quoted, ", ")
}

// Layout maps the required columns to their positions in a source header.
type Layout struct {
	indexes [numColumns]int
}

// NewLayout locates the required columns in a header row. Header names are
// compared after trimming whitespace and a leading byte order mark. Extra
// columns are ignored. If any required column is absent, the returned error
// is of class SchemaError and wraps a *MissingColumnsError naming all of
// them.
func NewLayout(header []string) (Layout, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}

	var layout Layout
	var missing []string
	for col, name := range RequiredColumns {
		i, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		layout.indexes[col] = i
	}
	if len(missing) > 0 {
		return Layout{}, SchemaError.Wrap(&MissingColumnsError{Columns: missing})
	}
	return layout, nil
}

// Record builds a record from the fields of one data row. Fields past the end
// of a short row are missing.
func (l Layout) Record(line int, fields []string) Record {
	field := func(col int) Cell {
		i := l.indexes[col]
		if i >= len(fields) {
			return Cell{}
		}
		return CellOf(fields[i])
	}
	return Record{
		Line:             line,
		DeliveryPersonID: field(colDeliveryPersonID).Value,
		CustomerID:       field(colCustomerID).Value,
		DeliveryDays:     field(colDeliveryDays),
		MonthlyBilling:   field(colMonthlyBilling),
		WeeklyBilling:    field(colWeeklyBilling),
		IndividualCost:   field(colIndividualCost),
	}
}
