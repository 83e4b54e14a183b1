package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kyokomi/emoji/v2"
	"github.com/manifoldco/promptui"
	"github.com/zeebo/errs"
	"golang.org/x/exp/constraints"

	"storj.io/delivery-metrics/pkg/config"
	"storj.io/delivery-metrics/pkg/delivery"
	"storj.io/delivery-metrics/pkg/fancy"
)

const defaultConfigPath = "./delivstat.toml"

func promptConfirm(label string) error {
	_, err := (&promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}).Run()
	if err != nil {
		return errors.New("aborted")
	}
	return nil
}

// loadConfig loads the configuration at path. A missing file at the default
// path yields the default configuration.
func loadConfig(path string) (config.Config, error) {
	load := config.Load
	if path == defaultConfigPath {
		load = config.LoadOptional
	}

	cfg, err := load(path)
	if err != nil {
		if dump := config.DumpUnknownFields(err); dump != "" {
			return config.Config{}, fmt.Errorf("unable to load config:\n%s", dump)
		}
		return config.Config{}, fmt.Errorf("unable to load config: %w", err)
	}
	return cfg, nil
}

func printResultStats(w io.Writer, path string, result *delivery.Result) {
	printf(w, ":white_check_mark: %s: %s aggregated\n", path, plural(result.Stats.Rows, "row"))
	printf(w, ":information_source: %d monthly, %d weekly, %d per-visit\n",
		result.Stats.ByCadence[delivery.Monthly],
		result.Stats.ByCadence[delivery.Weekly],
		result.Stats.ByCadence[delivery.PerVisit])
	if result.Stats.Rows == 0 {
		fancy.Fwarnf(w, "%s has no delivery records\n", path)
	}
}

// writeCosts writes the cost export to path, asking before an existing file
// is replaced unless force is set.
func writeCosts(path string, data []byte, force bool) (err error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			if err := promptConfirm(fmt.Sprintf("Overwrite %s", path)); err != nil {
				return err
			}
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errs.Wrap(err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() { err = errs.Combine(err, f.Close()) }()

	_, err = f.Write(data)
	return errs.Wrap(err)
}

func plural[T constraints.Integer](n T, noun string) string {
	s := strconv.FormatInt(int64(n), 10) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = emoji.Fprintf(w, format, args...)
}
