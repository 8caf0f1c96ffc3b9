package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath = "~/.medtrack"
	envConfig   = "MEDTRACK_CONFIG_PATH"
)

type Config interface {
	BasePath() string
	Backend() string
}

// LoadConfig reads the .medtrack config file (from $MEDTRACK_CONFIG_PATH or
// the working directory) and MEDTRACK_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("backend", BackendDiskv)
	v.SetConfigName(".medtrack") // .yaml is implicit
	v.SetEnvPrefix("MEDTRACK")
	v.AutomaticEnv()

	if override := os.Getenv(envConfig); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:        path,
		BackendName: v.GetString("backend"),
		File:        v.ConfigFileUsed(),
	}, nil
}

// ConfigFile reports which config file was read, if any.
func ConfigFile(cfg Config) string {
	if fc, ok := cfg.(*fileConfig); ok {
		return fc.File
	}
	return ""
}

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	Path        string
	BackendName string
}

func (s StaticConfig) BasePath() string { return s.Path }
func (s StaticConfig) Backend() string  { return s.BackendName }

type fileConfig struct {
	Path        string `json:"path"`
	BackendName string `json:"backend"`
	File        string `json:"-"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() string {
	return f.BackendName
}
