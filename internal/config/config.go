// Package config loads the task-adapter CLI configuration.
//
// Sources, lowest precedence first:
//  1. built-in defaults
//  2. YAML file named by --config or TASK_ADAPTER_CONFIG
//  3. variables from a .env file (never overriding the process environment)
//  4. process environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vitas/task-adapters/internal/logging"
)

const envPrefix = "TASK_ADAPTER_"

// DefaultVersion is the protocol version used when none is configured.
const DefaultVersion = "1.0"

// Config is the CLI configuration.
type Config struct {
	Version     string         `yaml:"version"`
	Log         logging.Config `yaml:"log"`
	MetricsFile string         `yaml:"metrics_file"`
}

// Options tells Load where to look. Zero values mean "use the default".
type Options struct {
	// ConfigFile overrides TASK_ADAPTER_CONFIG.
	ConfigFile string
	// EnvFile defaults to ".env"; a missing file is ignored.
	EnvFile string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", envFile, err)
	}
	get := func(key string) string {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			return v
		}
		return dotenv[envPrefix+key]
	}

	cfg := &Config{
		Version: DefaultVersion,
		Log: logging.Config{
			Level:     "info",
			Format:    "text",
			Output:    "stderr",
			Component: "task-adapter",
		},
	}

	path := opts.ConfigFile
	if path == "" {
		path = get("CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	overrides := []struct {
		key string
		dst *string
	}{
		{"VERSION", &cfg.Version},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FORMAT", &cfg.Log.Format},
		{"LOG_OUTPUT", &cfg.Log.Output},
		{"METRICS_FILE", &cfg.MetricsFile},
	}
	for _, o := range overrides {
		if v := get(o.key); v != "" {
			*o.dst = v
		}
	}

	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	return cfg, nil
}
