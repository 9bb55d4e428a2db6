package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/education-cost-planner/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.Dataset != constants.DefaultDatasetFile || cfg.ChartDir != constants.DefaultChartDir {
		t.Fatalf("expected default paths, got %+v", cfg)
	}
	if cfg.NYBaseline != constants.DefaultNYBaseline {
		t.Fatalf("expected default baseline, got %v", cfg.NYBaseline)
	}
	if cfg.FormSizeBytes() != constants.DefaultMaxFormSizeBytes {
		t.Fatalf("expected default form size, got %d", cfg.FormSizeBytes())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
	}{
		{
			name: "YAML",
			file: "server-config.yaml",
			contents: `address: 127.0.0.1:9000
dataset: data/costs.csv
chartDir: public/charts
nyBaseline: 30000
inflationPercent: 2
maxFormSize: 128K
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`,
		},
		{
			name: "TOML",
			file: "server-config.toml",
			contents: `address = "127.0.0.1:9000"
dataset = "data/costs.csv"
chartDir = "public/charts"
nyBaseline = 30000.0
inflationPercent = 2.0
maxFormSize = "128K"

[logging]
level = "debug"
format = "console"
outputFile = "/tmp/server.log"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}

			if cfg.Address != "127.0.0.1:9000" {
				t.Errorf("expected address override, got %s", cfg.Address)
			}
			if cfg.Dataset != "data/costs.csv" || cfg.ChartDir != "public/charts" {
				t.Errorf("expected path overrides, got %+v", cfg)
			}
			if cfg.FormSizeBytes() != 128*1024 {
				t.Errorf("expected form size override, got %d", cfg.FormSizeBytes())
			}
			if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.OutputFile != "/tmp/server.log" {
				t.Errorf("expected logging overrides, got %+v", cfg.Logging)
			}

			opts := cfg.Options("1.2.3")
			if opts.NYBaseline != 30000 || opts.InflationRate != 0.02 {
				t.Errorf("unexpected options %+v", opts)
			}
			if opts.Version != "1.2.3" || opts.MaxFormSize != 128*1024 {
				t.Errorf("unexpected options %+v", opts)
			}
		})
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad.yaml":      "maxFormSize: invalid",
		"negative.yaml": "nyBaseline: -5",
		"broken.toml":   "address = ",
	}

	for name, contents := range tests {
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
			t.Fatalf("failed to write temp config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("expected error for %s but got nil", name)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxFormSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1TB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}
