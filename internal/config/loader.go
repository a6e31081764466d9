package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when neither configuration nor the persisted
// connection provide a base URL.
const DefaultAPIURL = "http://localhost:8080"

// flagKeys maps persistent CLI flags onto configuration keys.
var flagKeys = map[string]string{
	"api-url":   "api.url",
	"token":     "api.token",
	"demo":      "demo",
	"log-level": "log.level",
	"output":    "output",
	"state":     "state.path",
}

// Load reads defaults, an optional config file, TRACKERCTL_* environment
// variables and any bound flags, in increasing priority.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("trackerctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "trackerctl"))
		}
		v.AddConfigPath("/etc/trackerctl/")
	}

	v.SetEnvPrefix("TRACKERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.rate_limit", 0)

	v.SetDefault("demo", false)

	v.SetDefault("state.path", defaultStatePath())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("exporter.addr", "127.0.0.1:9477")
	v.SetDefault("exporter.schedule", "@every 30s")
	v.SetDefault("exporter.namespace", "tracker")
	v.SetDefault("exporter.timeout", "20s")

	v.SetDefault("output", "table")
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".trackerctl", "state.db")
	}
	return filepath.Join(dir, "trackerctl", "state.db")
}

// StateDir returns the directory holding the state database, used for
// default log file placement.
func (c *Config) StateDir() string {
	return filepath.Dir(c.State.Path)
}
