package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/zeebo/clingy"

	"storj.io/delivery-metrics/pkg/fancy"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ok, err := clingy.Environment{}.Run(ctx, func(cmds clingy.Commands) {
		cmds.New("report", "Prints delivery and cost summaries for a delivery log", new(cmdReport))
		cmds.New("export", "Exports the cost per customer of a delivery log as CSV", new(cmdExport))
		cmds.New("serve", "Serves delivery log uploads over HTTP", new(cmdServe))
	})
	if err != nil {
		fancy.Ferrorf(os.Stderr, "failed: %v\n", err)
		return err
	}
	if !ok {
		return errors.New("usage error")
	}
	return nil
}
