package report

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
)

// CostBuffer accumulates the customer cost export CSV.
type CostBuffer struct {
	buf bytes.Buffer
	csv *csv.Writer
}

func (b *CostBuffer) Emit(customerID string, cost decimal.Decimal) {
	b.init()
	b.write(customerID, cost.StringFixed(2))
}

// Finalize returns the CSV. The header is present even when nothing was
// emitted.
func (b *CostBuffer) Finalize() []byte {
	b.init()
	b.csv.Flush()
	return b.buf.Bytes()
}

func (b *CostBuffer) init() {
	if b.csv == nil {
		b.csv = csv.NewWriter(&b.buf)
		b.write(ColumnCustomerID, ColumnTotalCost)
	}
}

func (b *CostBuffer) write(c1, c2 string) {
	_ = b.csv.Write([]string{c1, c2})
}
