// Package xlsx provides functions for loading delivery logs from Excel
// workbooks.
package xlsx

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/zeebo/errs"

	"storj.io/delivery-metrics/pkg/delivery"
)

// Reader streams delivery records from one sheet of a workbook.
type Reader struct {
	file   *excelize.File
	rows   *excelize.Rows
	layout delivery.Layout
	line   int
}

var _ delivery.RecordReader = (*Reader)(nil)

// NewReader opens the workbook in r and reads the header row of the named
// sheet, or of the first sheet when sheet is empty. The caller must Close the
// returned Reader.
func NewReader(r io.Reader, sheet string) (_ *Reader, err error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.New("unable to open workbook: %v", err)
	}
	defer func() {
		if err != nil {
			err = errs.Combine(err, file.Close())
		}
	}()

	if sheet == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, errs.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := file.Rows(sheet)
	if err != nil {
		return nil, errs.New("unable to read sheet %q: %v", sheet, err)
	}

	reader := &Reader{file: file, rows: rows}
	defer func() {
		if err != nil {
			err = errs.Combine(err, rows.Close())
		}
	}()

	header, err := reader.next()
	if err != nil && err != io.EOF {
		return nil, err
	}

	reader.layout, err = delivery.NewLayout(header)
	if err != nil {
		return nil, err
	}
	return reader, nil
}

// Read returns the next non-blank row as a record, or io.EOF once the sheet
// is exhausted.
func (r *Reader) Read() (delivery.Record, error) {
	fields, err := r.next()
	if err != nil {
		return delivery.Record{}, err
	}
	return r.layout.Record(r.line, fields), nil
}

func (r *Reader) Close() error {
	return errs.Combine(r.rows.Close(), r.file.Close())
}

// next returns the fields of the next non-blank row.
func (r *Reader) next() ([]string, error) {
	for r.rows.Next() {
		r.line++
		fields, err := r.rows.Columns()
		if err != nil {
			return nil, errs.New("row %d: %v", r.line, err)
		}
		if isBlank(fields) {
			continue
		}
		return fields, nil
	}
	if err := r.rows.Error(); err != nil {
		return nil, errs.Wrap(err)
	}
	return nil, io.EOF
}

func isBlank(fields []string) bool {
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
