package main

import (
	"context"
	"fmt"

	"github.com/zeebo/clingy"
	"go.uber.org/zap"

	"storj.io/delivery-metrics/pkg/ingest"
	"storj.io/delivery-metrics/pkg/report"
)

type cmdExport struct {
	config string
	logDir string
	out    string
	force  bool
	path   string
}

func (cmd *cmdExport) Setup(params clingy.Parameters) {
	cmd.config = stringFlag(params, "config", "The configuration file", defaultConfigPath)
	cmd.logDir = stringFlag(params, "log-dir", "Also write a debug log under this directory", "")
	cmd.out = stringFlag(params, "out", "The CSV file to write (defaults to export.path from the configuration)", "")
	cmd.force = toggleFlag(params, "force", "Overwrite the output without asking", false)
	cmd.path = stringArg(params, "FILE", "The delivery log (.csv or .xlsx)")
}

func (cmd *cmdExport) Execute(ctx context.Context) error {
	cfg, err := loadConfig(cmd.config)
	if err != nil {
		return err
	}

	log, err := openRunLog(cmd.logDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	out := cmd.out
	if out == "" {
		out = string(cfg.Export.Path)
	}

	result, err := ingest.AggregateFile(ctx, cmd.path, cfg.Aggregation.Options())
	if err != nil {
		return fmt.Errorf("unable to aggregate %q: %w", cmd.path, err)
	}
	printResultStats(clingy.Stdout(ctx), cmd.path, result)

	if err := writeCosts(out, report.CostCSV(result), cmd.force); err != nil {
		return fmt.Errorf("unable to export costs: %w", err)
	}

	printf(clingy.Stdout(ctx), ":white_check_mark: %s: %s exported\n", out, plural(len(result.CostPerCustomer), "customer"))
	log.Debug("exported customer costs", zap.String("path", out))
	return nil
}
