// Package config loads the runtime settings of the arith command.
//
// Settings are resolved in order: built-in defaults, an optional YAML file
// named by ARITH_CONFIG, then ARITH_* environment variables. Command-line
// flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/cockroachdb/apd/v3"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/roach88/arith/internal/arith"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ARITH_FORMAT.
	EnvPrefix = "ARITH"

	// EnvConfigFile names the environment variable holding the YAML file path.
	EnvConfigFile = "ARITH_CONFIG"
)

// DefaultGoldenDir holds the golden files of `arith test`.
const DefaultGoldenDir = "golden"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings shared by all commands. GoldenDir is where
// `arith test` keeps golden traces; a relative path resolves against the
// directory of each scenario file.
type Config struct {
	Format           string `yaml:"format" envconfig:"FORMAT"`
	Verbose          bool   `yaml:"verbose" envconfig:"VERBOSE"`
	LogLevel         string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	DecimalPrecision uint32 `yaml:"decimal_precision" envconfig:"DECIMAL_PRECISION"`
	DecimalRounding  string `yaml:"decimal_rounding" envconfig:"DECIMAL_ROUNDING"`
	GoldenDir        string `yaml:"golden_dir" envconfig:"GOLDEN_DIR"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Format:           FormatText,
		LogLevel:         logrus.WarnLevel.String(),
		DecimalPrecision: arith.DefaultDecimalPrecision,
		DecimalRounding:  string(apd.RoundHalfEven),
		GoldenDir:        DefaultGoldenDir,
	}
}

// Load resolves the configuration from the file named by ARITH_CONFIG (if
// set) and the environment.
func Load() (*Config, error) {
	cnf := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		fromFile, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cnf = fromFile
	}

	if err := envconfig.Process(EnvPrefix, cnf); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}
	return cnf, nil
}

// LoadFile reads a YAML configuration file on top of the defaults. Unknown
// keys are rejected.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	cnf := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cnf); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cnf, nil
}

var roundings = map[apd.Rounder]bool{
	apd.RoundDown:     true,
	apd.RoundHalfUp:   true,
	apd.RoundHalfEven: true,
	apd.RoundCeiling:  true,
	apd.RoundFloor:    true,
	apd.RoundHalfDown: true,
	apd.RoundUp:       true,
	apd.Round05Up:     true,
}

// Validate checks that every setting has an accepted value.
func (c *Config) Validate() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("invalid format %q: must be %s or %s", c.Format, FormatText, FormatJSON)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.DecimalPrecision == 0 {
		return fmt.Errorf("invalid decimal precision 0: must be positive")
	}
	if !roundings[apd.Rounder(c.DecimalRounding)] {
		return fmt.Errorf("invalid decimal rounding %q", c.DecimalRounding)
	}
	if c.GoldenDir == "" {
		return fmt.Errorf("golden dir must not be empty")
	}
	return nil
}

// Calculator builds the calculator described by the decimal settings.
func (c *Config) Calculator() *arith.Calculator {
	return arith.NewCalculator(
		arith.WithDecimalPrecision(c.DecimalPrecision),
		arith.WithDecimalRounding(apd.Rounder(c.DecimalRounding)),
	)
}
