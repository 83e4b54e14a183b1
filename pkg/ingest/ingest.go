// Package ingest loads delivery logs from uploaded or on-disk files and runs
// them through the aggregation engine.
package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/errs"

	"storj.io/delivery-metrics/pkg/csv"
	"storj.io/delivery-metrics/pkg/delivery"
	"storj.io/delivery-metrics/pkg/xlsx"
)

// Format is the tabular format of a delivery log.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// FormatFromName determines the format from a file name extension.
func FormatFromName(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt":
		return CSV, nil
	case ".xlsx", ".xlsm":
		return XLSX, nil
	case "":
		return "", errs.New("%q must have an extension", name)
	default:
		return "", errs.New("%q has unsupported file type %q", name, ext)
	}
}

// Aggregate reads the delivery log named name from r and aggregates it. The
// name only selects the format.
func Aggregate(ctx context.Context, name string, r io.Reader, opts delivery.Options) (*delivery.Result, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}

	switch format {
	case XLSX:
		return aggregateXLSX(ctx, r, opts)
	default:
		reader, err := csv.NewReader(r)
		if err != nil {
			return nil, err
		}
		return delivery.AggregateFrom(ctx, reader, opts)
	}
}

// AggregateFile aggregates the delivery log at path.
func AggregateFile(ctx context.Context, path string, opts delivery.Options) (_ *delivery.Result, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer func() {
		err = errs.Combine(err, f.Close())
	}()
	return Aggregate(ctx, path, f, opts)
}

func aggregateXLSX(ctx context.Context, r io.Reader, opts delivery.Options) (_ *delivery.Result, err error) {
	reader, err := xlsx.NewReader(r, "")
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errs.Combine(err, reader.Close())
	}()
	return delivery.AggregateFrom(ctx, reader, opts)
}
