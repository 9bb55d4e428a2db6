package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/education-cost-planner/pkg/constants"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
	}{
		{"Empty path", ""},
		{"Non-existent config file", filepath.Join(t.TempDir(), "missing.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration(tt.configPath)
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if conf.Dataset != constants.DefaultDatasetFile {
				t.Errorf("Dataset = %q, expected %q", conf.Dataset, constants.DefaultDatasetFile)
			}
			if conf.NYBaseline != constants.DefaultNYBaseline {
				t.Errorf("NYBaseline = %v, expected %v", conf.NYBaseline, constants.DefaultNYBaseline)
			}
			if conf.InflationRate() != 0 {
				t.Errorf("InflationRate = %v, expected 0", conf.InflationRate())
			}
			if conf.Output.Format != constants.OutputFormatPretty {
				t.Errorf("Output.Format = %q, expected pretty", conf.Output.Format)
			}
		})
	}
}

func TestLoadConfigurationFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "YAML",
			file: "config.yaml",
			content: `dataset: data/costs.csv
nyBaseline: 30000
inflationPercent: 2.5
chartDir: charts
logging:
  level: debug
  format: console
output:
  format: json
`,
		},
		{
			name: "TOML",
			file: "config.toml",
			content: `dataset = "data/costs.csv"
nyBaseline = 30000
inflationPercent = 2.5
chartDir = "charts"

[logging]
level = "debug"
format = "console"

[output]
format = "json"
`,
		},
		{
			name:    "JSON",
			file:    "config.json",
			content: `{"dataset": "data/costs.csv", "nyBaseline": 30000, "inflationPercent": 2.5, "chartDir": "charts", "logging": {"level": "debug", "format": "console"}, "output": {"format": "json"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration(writeConfig(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if conf.Dataset != "data/costs.csv" || conf.ChartDir != "charts" {
				t.Errorf("unexpected paths %+v", conf)
			}
			if conf.NYBaseline != 30000 || conf.InflationPercent != 2.5 {
				t.Errorf("unexpected amounts %+v", conf)
			}
			if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
				t.Errorf("unexpected logging %+v", conf.Logging)
			}
			if conf.Output.Format != constants.OutputFormatJSON {
				t.Errorf("unexpected output format %q", conf.Output.Format)
			}
		})
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("EDUCOST_NYBASELINE", "18000")
	t.Setenv("EDUCOST_LOGGING_LEVEL", "warn")

	conf, err := LoadConfiguration(writeConfig(t, "config.yaml", "nyBaseline: 30000\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.NYBaseline != 18000 {
		t.Errorf("NYBaseline = %v, expected environment override 18000", conf.NYBaseline)
	}
	if conf.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, expected warn", conf.Logging.Level)
	}
}

func TestLoadConfigurationInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Negative baseline", "nyBaseline: -1\n"},
		{"Negative inflation", "inflationPercent: -3\n"},
		{"Unknown output format", "output:\n  format: xml\n"},
		{"Malformed YAML", "nyBaseline: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, "config.yaml", tt.content)); err == nil {
				t.Errorf("LoadConfiguration() expected error but got none")
			}
		})
	}
}
