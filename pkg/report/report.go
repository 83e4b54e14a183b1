// Package report turns aggregation results into the tables shown to the
// operator and the customer cost export.
package report

import (
	"slices"
	"strconv"

	"golang.org/x/exp/maps"

	"storj.io/delivery-metrics/pkg/delivery"
)

const (
	ColumnDeliveryPersonID   = "Delivery Person ID"
	ColumnDayOfWeek          = "Day of the Week"
	ColumnTotalDeliveries    = "Total Deliveries"
	ColumnMonthlyDeliveries  = "Monthly Deliveries"
	ColumnWeeklyDeliveries   = "Weekly Deliveries"
	ColumnCustomerID         = "Customer ID"
	ColumnTotalCost          = "Total Cost ($)"
	TitleDeliveriesPerPerson = "Deliveries per Delivery Person"
	TitleDeliveriesPerDay    = "Deliveries per Day of the Week"
	TitleMonthlyPerPerson    = "Monthly Deliveries per Delivery Person"
	TitleWeeklyPerPerson     = "Weekly Deliveries per Delivery Person"
	TitleCostPerCustomer     = "Cost per Customer"
)

// Table is a two column summary table.
type Table struct {
	Title   string      `json:"title"`
	Columns [2]string   `json:"columns"`
	Rows    [][2]string `json:"rows"`
}

// Tables returns the five summary tables for a result. Rows are sorted by
// key, except the weekday table which follows weekdayOrder and then lists any
// other tokens in sorted order.
func Tables(result *delivery.Result, weekdayOrder []string) []Table {
	return []Table{
		countTable(TitleDeliveriesPerPerson, ColumnDeliveryPersonID, ColumnTotalDeliveries, result.DeliveriesPerPerson, nil),
		countTable(TitleDeliveriesPerDay, ColumnDayOfWeek, ColumnTotalDeliveries, result.DeliveriesPerWeekday, weekdayOrder),
		countTable(TitleMonthlyPerPerson, ColumnDeliveryPersonID, ColumnMonthlyDeliveries, result.MonthlyDeliveriesPerPerson, nil),
		countTable(TitleWeeklyPerPerson, ColumnDeliveryPersonID, ColumnWeeklyDeliveries, result.WeeklyDeliveriesPerPerson, nil),
		CostTable(result),
	}
}

// CostTable returns the per customer cost table with amounts to the cent.
func CostTable(result *delivery.Result) Table {
	table := Table{
		Title:   TitleCostPerCustomer,
		Columns: [2]string{ColumnCustomerID, ColumnTotalCost},
	}
	for _, customerID := range sortedKeys(result.CostPerCustomer) {
		table.Rows = append(table.Rows, [2]string{customerID, result.CostPerCustomer[customerID].StringFixed(2)})
	}
	return table
}

// CostCSV returns the customer cost export, one row per customer in sorted
// order.
func CostCSV(result *delivery.Result) []byte {
	var buf CostBuffer
	for _, customerID := range sortedKeys(result.CostPerCustomer) {
		buf.Emit(customerID, result.CostPerCustomer[customerID])
	}
	return buf.Finalize()
}

func countTable(title, keyColumn, countColumn string, counts map[string]int, order []string) Table {
	table := Table{
		Title:   title,
		Columns: [2]string{keyColumn, countColumn},
	}
	for _, key := range orderedKeys(counts, order) {
		table.Rows = append(table.Rows, [2]string{key, strconv.Itoa(counts[key])})
	}
	return table
}

func orderedKeys(counts map[string]int, order []string) []string {
	keys := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		if _, ok := counts[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	for _, key := range sortedKeys(counts) {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
