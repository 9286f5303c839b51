// Copyright (c) 2025 uratmangun
// miniapp - Farcaster mini-app account association tooling
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads tool configuration from miniapp.yaml, MINIAPP_*
// environment variables, and command-line flags, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is everything the CLI can be told. The private key may also
// arrive via an interactive prompt, in which case it never appears here.
type Config struct {
	FID        uint64 `mapstructure:"fid" yaml:"fid"`
	PrivateKey string `mapstructure:"private_key" yaml:"private_key,omitempty"`
	Domain     string `mapstructure:"domain" yaml:"domain"`
	Manifest   string `mapstructure:"manifest" yaml:"manifest"`
	Database   struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Debug    bool   `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the baseline configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"manifest":      ".well-known/farcaster.json",
		"database.type": "sqlite",
		"database.dsn":  "./miniapp-audit.db",
		"language":      "en",
		"debug":         false,
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Miniapp")
		default:
			configDir = "/etc/miniapp"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "miniapp")
	}

	return filepath.Join(configDir, "miniapp.yaml"), nil
}

// LoadConfig resolves configuration for a command: defaults, then the
// first miniapp.yaml found (explicit --config path, user config dir,
// system dir, current dir), then MINIAPP_* env vars, then bound flags.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitConfigFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("miniapp")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest file precedence.
	if explicitConfigFile != nil && *explicitConfigFile != "" {
		v.SetConfigFile(*explicitConfigFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("miniapp")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}
	// The flag spells it private-key; the config key is private_key.
	if f := cmd.Flags().Lookup("private-key"); f != nil {
		if err := v.BindPFlag("private_key", f); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile writes a starter config to the user or system location
// and returns the written path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may hold a private key.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	return path, nil
}
