package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/clingy"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/delivery-metrics/pkg/server"
)

const shutdownTimeout = 10 * time.Second

type cmdServe struct {
	config  string
	logDir  string
	address string
}

func (cmd *cmdServe) Setup(params clingy.Parameters) {
	cmd.config = stringFlag(params, "config", "The configuration file", defaultConfigPath)
	cmd.logDir = stringFlag(params, "log-dir", "Also write a debug log under this directory", "")
	cmd.address = stringFlag(params, "address", "The address to listen on (defaults to server.address from the configuration)", "")
}

func (cmd *cmdServe) Execute(ctx context.Context) error {
	cfg, err := loadConfig(cmd.config)
	if err != nil {
		return err
	}

	log, err := openRunLog(cmd.logDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	address := cmd.address
	if address == "" {
		address = cfg.Server.Address
	}

	gin.SetMode(cfg.Server.GinMode)
	srv := server.New(log, server.Config{
		Options:        cfg.Aggregation.Options(),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	httpServer := &http.Server{
		Addr:        address,
		Handler:     srv.Handler(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving delivery log uploads", zap.String("address", address))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errs.Wrap(err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errs.Wrap(err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return errs.Wrap(err)
	}
	return nil
}
