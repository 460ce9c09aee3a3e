package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the playbox server and its store.
type Config struct {
	// Listen is the address the HTTP API will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Database holds the store configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
}

// DatabaseConfig holds the location and bootstrap behaviour of the store.
type DatabaseConfig struct {
	// Dir is the directory the store file lives in. It is created if missing.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// File is the name of the store file inside Dir.
	File string `yaml:"file" mapstructure:"file"`
	// Recreate deletes an existing store file before opening it.
	Recreate bool `yaml:"recreate" mapstructure:"recreate"`
	// Seed fills an empty store with the demo data set.
	Seed bool `yaml:"seed" mapstructure:"seed"`
}

// Path returns the full path of the store file.
func (c *DatabaseConfig) Path() string {
	return filepath.Join(c.Dir, c.File)
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error, defaults are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("PLAYBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.playbox")
		v.AddConfigPath("/etc/playbox")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("no config file found, using defaults and environment")
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "127.0.0.1:3003")

	v.SetDefault("database.dir", "./data")
	v.SetDefault("database.file", "playbox.db")
	v.SetDefault("database.recreate", false)
	v.SetDefault("database.seed", false)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing playbox config")
	}
	if c.Database == nil {
		return fmt.Errorf("missing database config")
	}
	if c.Database.Dir == "" {
		return fmt.Errorf("database directory is required")
	}
	if c.Database.File == "" {
		return fmt.Errorf("database file name is required")
	}
	if strings.ContainsRune(c.Database.File, filepath.Separator) {
		return fmt.Errorf("database file name must not contain a path separator")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Database != nil {
		if dir := strings.TrimSpace(c.Database.Dir); dir != "" {
			c.Database.Dir = filepath.Clean(dir)
		} else {
			c.Database.Dir = ""
		}
		c.Database.File = strings.TrimSpace(c.Database.File)
	}
}
