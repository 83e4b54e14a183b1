// Package delivery aggregates delivery-log records into per-worker,
// per-weekday, per-cadence and per-customer cost metrics.
package delivery

// Cell is a raw field value read from a tabular source. The zero value is a
// missing value.
type Cell struct {
	Value string
	Valid bool
}

// Present returns a Cell holding v, even if v is empty.
func Present(v string) Cell {
	return Cell{Value: v, Valid: true}
}

// CellOf returns the Cell for a raw tabular field. Empty fields are treated
// as missing, the same way spreadsheet tools treat blank cells.
func CellOf(v string) Cell {
	if v == "" {
		return Cell{}
	}
	return Present(v)
}

// Record is one row of a delivery log, keyed by the required columns.
type Record struct {
	// Line is the line (or row) number in the source file. Zero when the
	// record did not come from a file.
	Line int

	// DeliveryPersonID identifies the delivery person
	DeliveryPersonID string

	// CustomerID identifies the customer
	CustomerID string

	// DeliveryDays is either a comma separated list of weekday tokens
	// (e.g. "M,T,W") or a value containing a cadence keyword.
	DeliveryDays Cell

	// MonthlyBilling is the estimated monthly bill for monthly customers
	MonthlyBilling Cell

	// WeeklyBilling is the estimated weekly bill for weekly customers
	WeeklyBilling Cell

	// IndividualCost is the estimated cost of a single delivery
	IndividualCost Cell
}
