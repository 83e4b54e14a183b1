package main

import (
	"context"
	"fmt"

	"github.com/zeebo/clingy"
	"go.uber.org/zap"

	"storj.io/delivery-metrics/pkg/fancy"
	"storj.io/delivery-metrics/pkg/ingest"
	"storj.io/delivery-metrics/pkg/report"
)

type cmdReport struct {
	config string
	logDir string
	export string
	force  bool
	path   string
}

func (cmd *cmdReport) Setup(params clingy.Parameters) {
	cmd.config = stringFlag(params, "config", "The configuration file", defaultConfigPath)
	cmd.logDir = stringFlag(params, "log-dir", "Also write a debug log under this directory", "")
	cmd.export = stringFlag(params, "export", "Also export the cost per customer to this CSV file", "")
	cmd.force = toggleFlag(params, "force", "Overwrite the export without asking", false)
	cmd.path = stringArg(params, "FILE", "The delivery log (.csv or .xlsx)")
}

func (cmd *cmdReport) Execute(ctx context.Context) error {
	cfg, err := loadConfig(cmd.config)
	if err != nil {
		return err
	}

	log, err := openRunLog(cmd.logDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts := cfg.Aggregation.Options()
	log.Debug("aggregating delivery log",
		zap.String("path", cmd.path),
		zap.Stringer("weeks_per_month", opts.WeeksPerMonth),
		zap.Strings("weekday_tokens", opts.WeekdayTokens))

	result, err := ingest.AggregateFile(ctx, cmd.path, opts)
	if err != nil {
		return fmt.Errorf("unable to aggregate %q: %w", cmd.path, err)
	}

	stdout := clingy.Stdout(ctx)
	printResultStats(stdout, cmd.path, result)

	for _, table := range report.Tables(result, opts.WeekdayTokens) {
		fmt.Fprintln(stdout)
		fancy.Ftable(stdout, table)
	}

	if cmd.export == "" {
		return nil
	}
	if err := writeCosts(cmd.export, report.CostCSV(result), cmd.force); err != nil {
		return fmt.Errorf("unable to export costs: %w", err)
	}
	log.Info("exported customer costs", zap.String("path", cmd.export), zap.Int("customers", len(result.CostPerCustomer)))
	return nil
}
