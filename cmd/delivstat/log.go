package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// openRunLog opens the log for a single command run. Every entry carries the
// run ID. When logDir is empty only the console log is opened.
func openRunLog(logDir string) (*zap.Logger, error) {
	runID := uuid.NewString()

	var log *zap.Logger
	var err error
	if logDir == "" {
		log, err = openConsoleLog()
	} else {
		log, err = openLog(logDir, runID)
	}
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("run", runID)), nil
}

// openLog tees the console log with a JSON debug log at
// <dataDir>/logs/<utc timestamp>-<run ID>.json and points logs/latest at it.
func openLog(dataDir, runID string) (*zap.Logger, error) {
	logsDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, errs.Wrap(err)
	}

	logName := logFileName(time.Now(), runID)
	logPath, err := filepath.Abs(filepath.Join(logsDir, logName))
	if err != nil {
		return nil, errs.Wrap(err)
	}

	consoleLog, err := openConsoleLog()
	if err != nil {
		return nil, err
	}

	jsonEncoder := zap.NewProductionEncoderConfig()
	jsonEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
	debugLog, err := (zap.Config{
		Level:         zap.NewAtomicLevelAt(zap.DebugLevel),
		Encoding:      "json",
		EncoderConfig: jsonEncoder,
		OutputPaths:   []string{"file://" + logPath},
	}).Build()
	if err != nil {
		return nil, errs.Wrap(err)
	}

	if err := linkLatest(logsDir, logName); err != nil {
		return nil, err
	}
	return zap.New(zapcore.NewTee(consoleLog.Core(), debugLog.Core())), nil
}

func logFileName(now time.Time, runID string) string {
	return now.UTC().Format("2006.01.02.15.04.05.000Z") + "-" + runID + ".json"
}

// linkLatest swaps logs/latest to name through a rename so readers never see
// it missing.
func linkLatest(logsDir, name string) error {
	tmp := filepath.Join(logsDir, ".latest")
	_ = os.Remove(tmp)
	if err := os.Symlink(name, tmp); err != nil {
		return errs.Wrap(err)
	}
	return errs.Wrap(os.Rename(tmp, filepath.Join(logsDir, "latest")))
}

// openConsoleLog logs info and above to stderr with coloured levels.
func openConsoleLog() (*zap.Logger, error) {
	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	log, err := (zap.Config{
		Level:         zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding:      "console",
		EncoderConfig: encoder,
		OutputPaths:   []string{"stderr"},
	}).Build()
	return log, errs.Wrap(err)
}
