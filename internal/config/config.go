// Package config loads console settings from an optional YAML file, a .env
// file and SALONADMIN_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when nothing configures the API root.
const DefaultAPIURL = "http://localhost:4000"

// Config is the resolved console configuration.
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	SessionFile string        `mapstructure:"session_file"`
	LogFile     string        `mapstructure:"log_file"`
	LogLevel    string        `mapstructure:"log_level"`
	Timeout     time.Duration `mapstructure:"timeout"`

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// Dir returns ~/.salonadmin, where the session, log and config live.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config.Dir: %w", err)
	}
	return filepath.Join(home, ".salonadmin"), nil
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load resolves the configuration rooted at dir. SALONADMIN_CONFIG names an
// explicit YAML file, which must exist; otherwise dir/config.yaml is read
// when present.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("session_file", filepath.Join(dir, "session.json"))
	v.SetDefault("log_file", filepath.Join(dir, "salonadmin.log"))
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", 30*time.Second)

	v.SetEnvPrefix("SALONADMIN")
	v.AutomaticEnv()
	// VITE_API_URL is what the web console's .env files use.
	if err := v.BindEnv("api_url", "SALONADMIN_API_URL", "VITE_API_URL"); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if explicit := os.Getenv("SALONADMIN_CONFIG"); explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", explicit, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config.Load: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}
	c.ConfigFile = v.ConfigFileUsed()
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("config.Load: timeout must be positive, got %s", c.Timeout)
	}
	return &c, nil
}
