// Package config provides layered configuration for the analytics server.
//
// Precedence (highest to lowest): flags > env vars > defaults. Environment
// variables use the ANALYTICS_ prefix with snake_case keys, so
// ANALYTICS_LOG_LEVEL maps to log_level and --log-level maps the same way.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all server configuration options.
type Config struct {
	Addr            string        `koanf:"addr"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`

	ForestTrees int   `koanf:"forest_trees"`
	ForestSeed  int64 `koanf:"forest_seed"`

	InsightURL        string        `koanf:"insight_url"`
	InsightAPIKey     string        `koanf:"insight_api_key"`
	InsightTimeout    time.Duration `koanf:"insight_timeout"`
	InsightMaxRetries int           `koanf:"insight_max_retries"`
}

// defaults are the base layer every load starts from.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"addr":             ":8080",
		"log_level":        "info",
		"log_format":       "text",
		"cors_origins":     []string{"*"},
		"shutdown_timeout": "10s",
		"request_timeout":  "60s",

		"forest_trees": 100,
		"forest_seed":  42,

		"insight_url":         "",
		"insight_api_key":     "",
		"insight_timeout":     "30s",
		"insight_max_retries": 3,
	}
}

// Flags returns the flag set understood by Load. Callers parse it before
// passing it in; nil is also accepted.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("analytics", pflag.ContinueOnError)
	fs.String("addr", ":8080", "listen address")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "text", "log format (text, json)")
	fs.StringSlice("cors-origins", []string{"*"}, "allowed CORS origins")
	fs.Int("forest-trees", 100, "default number of trees for forest fits")
	fs.String("insight-url", "", "upstream generative insight endpoint")
	return fs
}

// Load builds the configuration from defaults, ANALYTICS_ environment
// variables, and any explicitly set flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// ANALYTICS_LOG_LEVEL -> log_level. List-valued keys arrive as one
	// comma-separated string and must be split here; the weakly-typed
	// unmarshal would otherwise wrap the whole string as a single element.
	if err := k.Load(env.ProviderWithValue("ANALYTICS_", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, "ANALYTICS_"))
		if key == "cors_origins" {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set.
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
