// Package config provides configuration management for aidp using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/aidp/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "aidp"

// DefaultAiderBin is the aider executable looked up on PATH when no
// override is configured.
const DefaultAiderBin = "aider"

// DefaultBackupRetention is the number of profile backups kept by prune.
const DefaultBackupRetention = 5

// Config represents the top-level configuration structure.
type Config struct {
	Version     int    `mapstructure:"version" yaml:"version"`
	AiderBin    string `mapstructure:"aider_bin" yaml:"aider_bin"`
	ProfilesDir string `mapstructure:"profiles_dir" yaml:"profiles_dir"`
	Backup      Backup `mapstructure:"backup" yaml:"backup"`
}

// Backup holds backup-related settings.
type Backup struct {
	Retention int `mapstructure:"retention" yaml:"retention"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support (AIDP_AIDER_BIN, AIDP_PROFILES_DIR, ...)
	viper.SetEnvPrefix("AIDP")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("aider_bin", DefaultAiderBin)
	viper.SetDefault("profiles_dir", paths.ProfileDir())
	viper.SetDefault("backup.retention", DefaultBackupRetention)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// AiderBin returns the configured aider executable.
func AiderBin() string {
	if bin := viper.GetString("aider_bin"); bin != "" {
		return bin
	}
	return DefaultAiderBin
}

// ProfilesDir returns the configured profile directory.
func ProfilesDir() string {
	if dir := viper.GetString("profiles_dir"); dir != "" {
		return dir
	}
	return paths.ProfileDir()
}

// BackupRetention returns the configured backup retention count.
func BackupRetention() int {
	if n := viper.GetInt("backup.retention"); n > 0 {
		return n
	}
	return DefaultBackupRetention
}

// DefaultConfigPath returns the default config file location:
// <ConfigHome>/aidp/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(paths.ConfigHome(), AppName, "config.yaml")
}
