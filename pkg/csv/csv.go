// Package csv provides functions for loading delivery log CSV files
package csv

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/zeebo/errs"

	"storj.io/delivery-metrics/pkg/delivery"
)

// Reader streams delivery records from a CSV delivery log.
type Reader struct {
	r      *csv.Reader
	layout delivery.Layout
}

var _ delivery.RecordReader = (*Reader)(nil)

// NewReader reads the header row from r and checks that it has every required
// column. The error is of class delivery.SchemaError if it does not.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	switch {
	case errors.Is(err, io.EOF):
		header = nil
	case err != nil:
		return nil, errs.Wrap(err)
	}

	layout, err := delivery.NewLayout(header)
	if err != nil {
		return nil, err
	}
	return &Reader{r: cr, layout: layout}, nil
}

// Read returns the next record, or io.EOF once the file is exhausted.
func (r *Reader) Read() (delivery.Record, error) {
	fields, err := r.r.Read()
	switch {
	case errors.Is(err, io.EOF):
		return delivery.Record{}, io.EOF
	case err != nil:
		return delivery.Record{}, errs.Wrap(err)
	}
	line, _ := r.r.FieldPos(0)
	return r.layout.Record(line, fields), nil
}
