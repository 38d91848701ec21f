// Package config manages persisted generator defaults via Viper, stored
// in ~/.bootstitch/config.yaml and overridable through the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bootstitch-labs/bootstitch/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys and their shipped defaults.
const (
	KeyInitializrURL    = "initializr.url"
	KeyBootVersion      = "defaults.boot-version"
	KeyJavaVersion      = "defaults.java-version"
	KeyPackaging        = "defaults.packaging"
	KeyGroupID          = "defaults.group-id"
	KeyFrontendTemplate = "defaults.frontend-template"
)

var defaults = map[string]string{
	KeyInitializrURL:    "https://start.spring.io",
	KeyBootVersion:      "3.4.1",
	KeyJavaVersion:      "17",
	KeyPackaging:        "jar",
	KeyGroupID:          "com.example",
	KeyFrontendTemplate: "vue",
}

// Dir returns the path to the config directory (~/.bootstitch/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.bootstitch/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Keys returns all known config keys in a stable order.
func Keys() []string {
	return []string{
		KeyInitializrURL,
		KeyBootVersion,
		KeyJavaVersion,
		KeyPackaging,
		KeyGroupID,
		KeyFrontendTemplate,
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
