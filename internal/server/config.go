package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/education-cost-planner/internal/config"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address          string               `yaml:"address" toml:"address"`
	Dataset          string               `yaml:"dataset" toml:"dataset"`
	ChartDir         string               `yaml:"chartDir" toml:"chartDir"`
	NYBaseline       float64              `yaml:"nyBaseline" toml:"nyBaseline"`
	InflationPercent float64              `yaml:"inflationPercent" toml:"inflationPercent"`
	MaxFormSize      string               `yaml:"maxFormSize" toml:"maxFormSize"`
	Logging          config.LoggingConfig `yaml:"logging" toml:"logging"`
	formSizeBytes    int64
}

// DefaultConfig returns the server configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:          constants.DefaultServerAddress,
		Dataset:          constants.DefaultDatasetFile,
		ChartDir:         constants.DefaultChartDir,
		NYBaseline:       constants.DefaultNYBaseline,
		InflationPercent: constants.DefaultInflationRate * constants.PercentageMultiplier,
		MaxFormSize:      fmt.Sprintf("%d", constants.DefaultMaxFormSizeBytes),
		formSizeBytes:    constants.DefaultMaxFormSizeBytes,
	}
}

// LoadConfig loads the server configuration from YAML, or from TOML when the
// file ends in .toml. If the file does not exist, defaults are returned
// without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FormSizeBytes returns the configured form body limit in bytes.
func (c *Config) FormSizeBytes() int64 {
	return c.formSizeBytes
}

// Options converts the configuration into handler options.
func (c *Config) Options(version string) Options {
	return Options{
		DatasetPath:   c.Dataset,
		ChartDir:      c.ChartDir,
		NYBaseline:    c.NYBaseline,
		InflationRate: mathutil.PercentToFraction(c.InflationPercent),
		MaxFormSize:   c.formSizeBytes,
		Version:       version,
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.Dataset == "" {
		c.Dataset = constants.DefaultDatasetFile
	}
	if c.ChartDir == "" {
		c.ChartDir = constants.DefaultChartDir
	}
	if c.NYBaseline < 0 {
		return fmt.Errorf("nyBaseline must be non-negative, got %v", c.NYBaseline)
	}
	if c.InflationPercent < 0 {
		return fmt.Errorf("inflationPercent must be non-negative, got %v", c.InflationPercent)
	}

	bytes, err := ParseSize(c.MaxFormSize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxFormSizeBytes
	}
	c.formSizeBytes = bytes
	c.MaxFormSize = fmt.Sprintf("%d", bytes)
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxFormSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
