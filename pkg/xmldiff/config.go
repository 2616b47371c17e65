// config.go - configuration surface: persisted YAML defaults and XMLDIFF_*
// environment variables loaded via viper, with CLI flag overrides layered
// on top by ApplyFlagOverrides.
package xmldiff

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "XMLDIFF"

// Config is the full set of user-facing options, independent of how they
// were supplied (file, environment, or flags).
type Config struct {
	Include          []string `mapstructure:"include"`
	Exclude          []string `mapstructure:"exclude"`
	ExcludeEmptyNode bool     `mapstructure:"exclude_empty_nodes"`
	OutputFormat     string   `mapstructure:"output_format"`
	LogLevel         string   `mapstructure:"log_level"`
	ServerAddr       string   `mapstructure:"server_addr"`
}

// defaultConfig returns the built-in baseline merged under any file/env/flag
// override.
func defaultConfig() Config {
	return Config{
		OutputFormat: "compact",
		LogLevel:     "info",
		ServerAddr:   ":8080",
	}
}

// newViper builds a Viper instance bound to XMLDIFF_* environment variables,
// using the standard env-prefix-plus-key-replacer convention.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	d := defaultConfig()
	v.SetDefault("include", d.Include)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("exclude_empty_nodes", d.ExcludeEmptyNode)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("server_addr", d.ServerAddr)

	return v
}

// LoadConfig reads configPath (if non-empty) and layers XMLDIFF_* environment
// overrides on top, returning a fully populated Config. An empty configPath
// skips the file read and returns defaults plus any environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("xmldiff: failed to read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("xmldiff: failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// ToOptions translates a Config into the engine-level Options and
// PredicateOptions the diff engine actually consumes.
func (c *Config) ToOptions() (Options, PredicateOptions) {
	predOpts := PredicateOptions{Include: c.Include, Exclude: c.Exclude}
	opts := Options{
		ExcludeEmptyNodes: c.ExcludeEmptyNode,
		Predicate:         BuildPredicate(predOpts),
	}
	return opts, predOpts
}

// ApplyFlagOverrides merges non-zero-value flag overrides onto cfg in place.
// Flags always win over file and environment settings.
func (c *Config) ApplyFlagOverrides(include, exclude []string, excludeEmpty *bool, outputFormat, logLevel, serverAddr string) {
	if len(include) > 0 {
		c.Include = include
	}
	if len(exclude) > 0 {
		c.Exclude = exclude
	}
	if excludeEmpty != nil {
		c.ExcludeEmptyNode = *excludeEmpty
	}
	if outputFormat != "" {
		c.OutputFormat = outputFormat
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if serverAddr != "" {
		c.ServerAddr = serverAddr
	}
}
