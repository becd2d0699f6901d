package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CRITPATH_FORMAT.
const EnvPrefix = "CRITPATH"

// SetDefaults registers the default configuration with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("format", d.Format)
	v.SetDefault("color", d.Color)
	v.SetDefault("separator", d.Separator)
	v.SetDefault("show_waves", d.ShowWaves)
	v.SetDefault("max_parallel", d.MaxParallel)
	v.SetDefault("cache_size", d.CacheSize)
}

// NewViper returns a viper instance reading cfgFile, or critpath.yaml from
// the working directory when cfgFile is empty, plus CRITPATH_* environment
// variables.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("critpath")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper reads the config file (if any) and decodes v into a Config.
// A missing default config file is not an error; a missing explicit one is.
func FromViper(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
