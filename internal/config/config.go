// Package config defines the data structures related to configuration and
// includes functions for loading and validating the planner configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
	"github.com/iwvelando/education-cost-planner/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the budget planner.
type Configuration struct {
	Dataset          string        `mapstructure:"dataset" yaml:"dataset"`
	NYBaseline       float64       `mapstructure:"nyBaseline" yaml:"nyBaseline"`
	InflationPercent float64       `mapstructure:"inflationPercent" yaml:"inflationPercent"`
	ChartDir         string        `mapstructure:"chartDir" yaml:"chartDir"`
	Logging          LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output           OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty" toml:"level"`                // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty" toml:"format"`             // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty" toml:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// Defaults returns the configuration used when no file or override is present.
func Defaults() *Configuration {
	return &Configuration{
		Dataset:          constants.DefaultDatasetFile,
		NYBaseline:       constants.DefaultNYBaseline,
		InflationPercent: constants.DefaultCLIInflationPercent,
		ChartDir:         constants.DefaultChartDir,
		Output:           OutputConfig{Format: constants.OutputFormatPretty},
	}
}

// InflationRate returns the configured inflation as a fraction.
func (c *Configuration) InflationRate() float64 {
	return mathutil.PercentToFraction(c.InflationPercent)
}

// LoadConfiguration reads the configuration at configPath. The format follows
// the file extension (yaml, yml, toml or json). Environment variables prefixed
// with EDUCOST_ override file values, e.g. EDUCOST_NYBASELINE or
// EDUCOST_LOGGING_LEVEL. A missing file yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("dataset", d.Dataset)
	v.SetDefault("nyBaseline", d.NYBaseline)
	v.SetDefault("inflationPercent", d.InflationPercent)
	v.SetDefault("chartDir", d.ChartDir)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", d.Output.Format)
}

// Validate checks value ranges and the output format.
func (c *Configuration) Validate() error {
	if c.NYBaseline < 0 {
		return fmt.Errorf("nyBaseline must be non-negative, got %v", c.NYBaseline)
	}
	if c.InflationPercent < 0 {
		return fmt.Errorf("inflationPercent must be non-negative, got %v", c.InflationPercent)
	}
	if c.Dataset == "" {
		c.Dataset = constants.DefaultDatasetFile
	}
	if c.ChartDir == "" {
		c.ChartDir = constants.DefaultChartDir
	}
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	return validation.ValidateOutputFormat(c.Output.Format)
}
