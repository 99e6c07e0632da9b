package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is where entries are kept when no config overrides it.
	DefaultPath = "~/.contentcal.db"
	// DefaultPlatform is assigned to new entries created without platforms.
	DefaultPlatform = "facebook"
	// DefaultRefresh is the reload interval of the watch loop.
	DefaultRefresh = "30s"
	// DefaultSuccessWindow bounds the success-rate metric.
	DefaultSuccessWindow = "4w"
	// DefaultLogLevel is the logrus level used by the CLI.
	DefaultLogLevel = "info"
)

// Config is the resolved runtime configuration.
type Config interface {
	BasePath() string
	DefaultPlatform() string
	Refresh() string
	SuccessWindow() string
	LogLevel() string
}

// LoadConfig reads .contentcal.yaml from CONTENTCAL_CONFIG_PATH and the
// working directory, with CONTENTCAL_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("default_platform", DefaultPlatform)
	v.SetDefault("refresh", DefaultRefresh)
	v.SetDefault("success_window", DefaultSuccessWindow)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetConfigName(".contentcal") // .yaml is implicit
	v.SetEnvPrefix("CONTENTCAL")
	v.AutomaticEnv()

	if override := os.Getenv("CONTENTCAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:        path,
		Platform:    strings.ToLower(strings.TrimSpace(v.GetString("default_platform"))),
		RefreshRaw:  v.GetString("refresh"),
		WindowRaw:   v.GetString("success_window"),
		LogLevelRaw: v.GetString("log_level"),
	}, nil
}

// StaticConfig is a Config with fixed values, used by tests and embedders.
func StaticConfig(path string) Config {
	return &fileConfig{
		Path:        path,
		Platform:    DefaultPlatform,
		RefreshRaw:  DefaultRefresh,
		WindowRaw:   DefaultSuccessWindow,
		LogLevelRaw: DefaultLogLevel,
	}
}

type fileConfig struct {
	Path        string `json:"path"`
	Platform    string `json:"default_platform"`
	RefreshRaw  string `json:"refresh"`
	WindowRaw   string `json:"success_window"`
	LogLevelRaw string `json:"log_level"`
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) DefaultPlatform() string {
	if f.Platform == "" {
		return DefaultPlatform
	}
	return f.Platform
}

func (f *fileConfig) Refresh() string { return f.RefreshRaw }

func (f *fileConfig) SuccessWindow() string { return f.WindowRaw }

func (f *fileConfig) LogLevel() string { return f.LogLevelRaw }
