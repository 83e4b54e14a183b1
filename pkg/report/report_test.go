package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"storj.io/delivery-metrics/pkg/delivery"
	"storj.io/delivery-metrics/pkg/report"
)

func TestTables(t *testing.T) {
	result := delivery.Aggregate([]delivery.Record{
		{DeliveryPersonID: "P2", CustomerID: "C2", DeliveryDays: delivery.Present("F,M,Th"), IndividualCost: delivery.Present("$1")},
		{DeliveryPersonID: "P1", CustomerID: "C1", DeliveryDays: delivery.Present("Monthly"), MonthlyBilling: delivery.Present("$45.5")},
		{DeliveryPersonID: "P1", CustomerID: "C3", DeliveryDays: delivery.Present("Weekly"), WeeklyBilling: delivery.Present("$10")},
	}, delivery.Options{})

	tables := report.Tables(result, delivery.DefaultWeekdayTokens)
	require.Equal(t, []report.Table{
		{
			Title:   "Deliveries per Delivery Person",
			Columns: [2]string{"Delivery Person ID", "Total Deliveries"},
			Rows:    [][2]string{{"P1", "2"}, {"P2", "3"}},
		},
		{
			Title:   "Deliveries per Day of the Week",
			Columns: [2]string{"Day of the Week", "Total Deliveries"},
			Rows:    [][2]string{{"M", "1"}, {"Th", "1"}, {"F", "1"}},
		},
		{
			Title:   "Monthly Deliveries per Delivery Person",
			Columns: [2]string{"Delivery Person ID", "Monthly Deliveries"},
			Rows:    [][2]string{{"P1", "1"}},
		},
		{
			Title:   "Weekly Deliveries per Delivery Person",
			Columns: [2]string{"Delivery Person ID", "Weekly Deliveries"},
			Rows:    [][2]string{{"P1", "1"}},
		},
		{
			Title:   "Cost per Customer",
			Columns: [2]string{"Customer ID", "Total Cost ($)"},
			Rows:    [][2]string{{"C1", "45.50"}, {"C2", "12.99"}, {"C3", "43.30"}},
		},
	}, tables)
}

func TestTables_UnorderedWeekdays(t *testing.T) {
	result := &delivery.Result{
		DeliveriesPerWeekday: map[string]int{"Sa": 1, "F": 2, "Su": 3},
	}
	tables := report.Tables(result, []string{"F", "M"})
	require.Equal(t, [][2]string{{"F", "2"}, {"Sa", "1"}, {"Su", "3"}}, tables[1].Rows)
	require.Empty(t, tables[0].Rows)
	require.Empty(t, tables[4].Rows)
}

func TestCostCSV(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		result := &delivery.Result{
			CostPerCustomer: map[string]decimal.Decimal{
				"C2": decimal.RequireFromString("216.5"),
				"C1": decimal.NewFromInt(100),
				"C3": decimal.RequireFromString("0.005"),
			},
		}
		require.Equal(t, `Customer ID,Total Cost ($)
C1,100.00
C2,216.50
C3,0.01
`, string(report.CostCSV(result)))
	})

	t.Run("empty", func(t *testing.T) {
		require.Equal(t, "Customer ID,Total Cost ($)\n", string(report.CostCSV(&delivery.Result{})))
	})
}

func TestCostBuffer(t *testing.T) {
	var b report.CostBuffer
	b.Emit("a,b", decimal.RequireFromString("1.234"))
	b.Emit("plain", decimal.Zero)
	require.Equal(t, `Customer ID,Total Cost ($)
"a,b",1.23
plain,0.00
`, string(b.Finalize()))
}
