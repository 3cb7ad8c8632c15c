package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location
const EnvConfigPath = "DEWAKOST_CONFIG"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Log settings
	Log LogConfig `yaml:"log"`

	// Public listing settings
	Listing ListingConfig `yaml:"listing"`
}

type DatabaseConfig struct {
	Path    string `yaml:"path"`    // Path to SQLite database
	Encrypt bool   `yaml:"encrypt"` // Use SQLCipher with a key from the keyring
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
	Output string `yaml:"output"` // file, stderr or none
	Path   string `yaml:"path"`   // Log file when output is "file"
}

type ListingConfig struct {
	DefaultMaxPrice int64 `yaml:"default_max_price"` // Price ceiling of a fresh filter, in rupiah
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "dewakost")
}

// DefaultConfigPath returns $DEWAKOST_CONFIG or ~/.config/dewakost/config.yaml
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()

	return &Config{
		Database: DatabaseConfig{
			Path:    filepath.Join(dir, "dewakost.db"),
			Encrypt: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "file",
			Path:   filepath.Join(dir, "dewakost.log"),
		},
		Listing: ListingConfig{
			DefaultMaxPrice: 3_000_000,
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Unset keys keep their defaults
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database and log directories
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0700); err != nil {
		return err
	}

	if c.Log.Output == "file" && c.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0700); err != nil {
			return err
		}
	}

	return nil
}
