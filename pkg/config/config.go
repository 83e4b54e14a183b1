package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"storj.io/delivery-metrics/pkg/delivery"
)

type MissingFieldsError = toml.StrictMissingError

type Config struct {
	Aggregation Aggregation `toml:"aggregation"`
	Export      Export      `toml:"export"`
	Server      Server      `toml:"server"`
}

type Aggregation struct {
	// WeeksPerMonth converts weekly amounts into monthly costs.
	WeeksPerMonth decimal.Decimal `toml:"weeks_per_month"`

	// WeekdayTokens are the day tokens counted per weekday, in display
	// order.
	WeekdayTokens []string `toml:"weekday_tokens"`
}

// Options returns the aggregation options for the engine.
func (a Aggregation) Options() delivery.Options {
	return delivery.Options{
		WeeksPerMonth: a.WeeksPerMonth,
		WeekdayTokens: append([]string(nil), a.WeekdayTokens...),
	}
}

type Export struct {
	// Path is where the customer cost CSV is written by default.
	Path Path `toml:"path"`
}

type Server struct {
	// Address is the listen address of the upload server.
	Address string `toml:"address"`

	// MaxUploadBytes caps the size of an uploaded delivery log.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	// ReadTimeout bounds how long reading a request may take.
	ReadTimeout Duration `toml:"read_timeout"`

	// GinMode is the gin mode (debug, release or test).
	GinMode string `toml:"gin_mode"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	const (
		defaultExportPath     = "./customer-costs.csv"
		defaultServerAddress  = ":8080"
		defaultMaxUploadBytes = 32 << 20
		defaultReadTimeout    = Duration(30 * time.Second)
		defaultGinMode        = "release"
	)
	return Config{
		Aggregation: Aggregation{
			WeeksPerMonth: delivery.DefaultWeeksPerMonth,
			WeekdayTokens: append([]string(nil), delivery.DefaultWeekdayTokens...),
		},
		Export: Export{
			Path: ToPath(defaultExportPath),
		},
		Server: Server{
			Address:        defaultServerAddress,
			MaxUploadBytes: defaultMaxUploadBytes,
			ReadTimeout:    defaultReadTimeout,
			GinMode:        defaultGinMode,
		},
	}
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// LoadOptional is like Load but returns the defaults when path does not
// exist.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func Parse(data []byte) (Config, error) {
	config := Default()

	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if !c.Aggregation.WeeksPerMonth.IsPositive() {
		return fmt.Errorf("aggregation.weeks_per_month must be positive; got %s", c.Aggregation.WeeksPerMonth)
	}
	if len(c.Aggregation.WeekdayTokens) == 0 {
		return errors.New("aggregation.weekday_tokens cannot be empty")
	}
	seen := make(map[string]bool, len(c.Aggregation.WeekdayTokens))
	for _, token := range c.Aggregation.WeekdayTokens {
		switch {
		case token == "":
			return errors.New("aggregation.weekday_tokens cannot contain an empty token")
		case seen[token]:
			return fmt.Errorf("aggregation.weekday_tokens contains %q more than once", token)
		}
		seen[token] = true
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive; got %d", c.Server.MaxUploadBytes)
	}
	return nil
}

func DumpUnknownFields(err error) string {
	var sme *toml.StrictMissingError
	if errors.As(err, &sme) {
		return sme.String()
	}
	return ""
}
