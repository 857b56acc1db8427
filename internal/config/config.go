// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoaderConfig tunes document loading.
type LoaderConfig struct {
	Workers int `yaml:"workers"`
}

// RenderConfig controls plot output.
type RenderConfig struct {
	Title      string  `yaml:"title"`
	WidthIn    float64 `yaml:"width_in"`
	HeightIn   float64 `yaml:"height_in"`
	Footprints bool    `yaml:"footprints"`
	Endpoints  bool    `yaml:"endpoints"`
}

// GreptimeConfig points the exporter at a GreptimeDB instance.
type GreptimeConfig struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
	// Epoch is the RFC 3339 wall-clock time that trajectory time t=0 maps to.
	Epoch string `yaml:"epoch"`
}

// ExportConfig groups exporter sinks.
type ExportConfig struct {
	Greptime GreptimeConfig `yaml:"greptime"`
}

// ServeConfig configures the HTTP viewer.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the root tool configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Loader LoaderConfig `yaml:"loader"`
	Render RenderConfig `yaml:"render"`
	Export ExportConfig `yaml:"export"`
	Serve  ServeConfig  `yaml:"serve"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Loader: LoaderConfig{Workers: 1},
		Render: RenderConfig{
			Title:      "Agent trajectories",
			WidthIn:    10,
			HeightIn:   8,
			Footprints: true,
			Endpoints:  true,
		},
		Export: ExportConfig{Greptime: GreptimeConfig{
			Database: "public",
			Table:    "agent_trajectory",
			Epoch:    "1970-01-01T00:00:00Z",
		}},
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// Load reads a YAML config, validates it against the CUE schema and overlays it on
// Defaults. An empty configPath returns Defaults. An empty cueSchemaPath uses the
// built-in schema.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	cfg := Defaults()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	schema := defaultSchema
	if cueSchemaPath != "" {
		if schema, err = os.ReadFile(cueSchemaPath); err != nil {
			return nil, fmt.Errorf("read CUE schema: %w", err)
		}
	}
	if err := Validate(data, schema); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Export.Greptime.EpochTime(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tableName matches the table pattern enforced by schema.cue.
var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ApplyEnv overrides selected settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("TRAJVIZ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("TRAJVIZ_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid TRAJVIZ_WORKERS %q", v)
		}
		c.Loader.Workers = n
	}
	if v := getenv("GREPTIMEDB_ENDPOINT"); v != "" {
		c.Export.Greptime.Endpoint = v
	}
	if v := getenv("GREPTIMEDB_DATABASE"); v != "" {
		c.Export.Greptime.Database = v
	}
	if v := getenv("GREPTIMEDB_TABLE"); v != "" {
		if !tableName.MatchString(v) {
			return fmt.Errorf("invalid GREPTIMEDB_TABLE %q", v)
		}
		c.Export.Greptime.Table = v
	}
	return nil
}

// EpochTime parses Epoch.
func (g GreptimeConfig) EpochTime() (time.Time, error) {
	if g.Epoch == "" {
		return time.Unix(0, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, g.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse greptime epoch: %w", err)
	}
	return t, nil
}
