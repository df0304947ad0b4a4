// Package config loads the application configuration: the allow-list of
// registry key paths plus store and history settings.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/regscope/regscope/internal/errx"
)

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	// Keys is the allow-list of registry key paths to project.
	Keys []string `mapstructure:"keys"`
	// MockRegistry, when set, is an XML registry document to use instead
	// of the live registry.
	MockRegistry string `mapstructure:"mock_registry"`

	History HistoryConfig `mapstructure:"history"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Load reads regscope.yaml from the working directory or
// ~/.config/regscope/, plus REGSCOPE_* environment overrides. A missing
// config file is not an error; a malformed one is.
func Load(explicitFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REGSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only surfaces env values for keys viper knows about, so
	// every config key is bound explicitly.
	for _, key := range []string{"keys", "mock_registry", "history.enabled", "history.dir"} {
		_ = v.BindEnv(key)
	}
	v.SetDefault("history.enabled", true)

	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName("regscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "regscope"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return nil, errx.Wrap(ErrReadConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errx.Wrap(ErrParseConfig, err)
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = defaultHistoryDir()
	}
	return &cfg, nil
}

func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".regscope"
	}
	return filepath.Join(home, ".local", "share", "regscope")
}
