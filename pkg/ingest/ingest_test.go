package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storj.io/delivery-metrics/pkg/delivery"
	"storj.io/delivery-metrics/pkg/ingest"
)

const goodCSV = `Delivery Person ID,Customer ID,Delivery Days,Monthly Billing (Estimated),Weekly Billing (Estimated),Individual Cost (Estimated)
P1,C1,"M,T,Monthly",$100,,
P1,C2,"M,T,W,Th,F",,,$10
`

func TestFormatFromName(t *testing.T) {
	testCases := []struct {
		name   string
		format ingest.Format
		err    string
	}{
		{name: "log.csv", format: ingest.CSV},
		{name: "LOG.CSV", format: ingest.CSV},
		{name: "dir/log.txt", format: ingest.CSV},
		{name: "log.xlsx", format: ingest.XLSX},
		{name: "log", err: `"log" must have an extension`},
		{name: "log.pdf", err: `"log.pdf" has unsupported file type ".pdf"`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			format, err := ingest.FormatFromName(testCase.name)
			if testCase.err != "" {
				require.EqualError(t, err, testCase.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.format, format)
		})
	}
}

func TestAggregateFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(dir, "deliveries.csv")
		require.NoError(t, os.WriteFile(path, []byte(goodCSV), 0644))

		result, err := ingest.AggregateFile(ctx, path, delivery.Options{})
		require.NoError(t, err)
		assertGoodResult(t, result)
	})

	t.Run("xlsx", func(t *testing.T) {
		f := excelize.NewFile()
		defer func() { _ = f.Close() }()
		rows := [][]any{
			{"Delivery Person ID", "Customer ID", "Delivery Days", "Monthly Billing (Estimated)", "Weekly Billing (Estimated)", "Individual Cost (Estimated)"},
			{"P1", "C1", "M,T,Monthly", "$100", "", ""},
			{"P1", "C2", "M,T,W,Th,F", "", "", "$10"},
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
		}
		path := filepath.Join(dir, "deliveries.xlsx")
		require.NoError(t, f.SaveAs(path))

		result, err := ingest.AggregateFile(ctx, path, delivery.Options{})
		require.NoError(t, err)
		assertGoodResult(t, result)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ingest.AggregateFile(ctx, filepath.Join(dir, "nope.csv"), delivery.Options{})
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestAggregate_SchemaError(t *testing.T) {
	_, err := ingest.Aggregate(context.Background(), "upload.csv", strings.NewReader("Customer ID\nC1\n"), delivery.Options{})
	require.Error(t, err)
	assert.True(t, delivery.SchemaError.Has(err))
}

func assertGoodResult(t *testing.T, result *delivery.Result) {
	t.Helper()
	assert.Equal(t, map[string]int{"P1": 8}, result.DeliveriesPerPerson)
	assert.Equal(t, map[string]int{"M": 2, "T": 2, "W": 1, "Th": 1, "F": 1}, result.DeliveriesPerWeekday)
	assert.Equal(t, map[string]int{"P1": 1}, result.MonthlyDeliveriesPerPerson)
	assert.Empty(t, result.WeeklyDeliveriesPerPerson)
	assert.Equal(t, "100.00", result.CostPerCustomer["C1"].StringFixed(2))
	assert.Equal(t, "216.50", result.CostPerCustomer["C2"].StringFixed(2))
}
