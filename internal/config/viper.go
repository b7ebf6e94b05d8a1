package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flag name -> config key
var flagKeys = map[string]string{
	"url":       "url",
	"debug":     "debug",
	"timeout":   "timeout",
	"tolerance": "tolerance",
	"ntp-host":  "ntp_host",
	"output":    "output",
}

// Load resolves the config from flags and TIMECHECK_* environment variables.
// Explicitly set flags win over the environment, which wins over defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("url", def.URL)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("tolerance", def.Tolerance)
	v.SetDefault("ntp_host", def.NTPHost)
	v.SetDefault("output", def.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
