package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds catalog backend configuration
type ServerConfig struct {
	BaseURL          string        `mapstructure:"base_url"`       // e.g. http://localhost:8080/api
	Timeout          time.Duration `mapstructure:"timeout"`        // JSON request timeout
	UploadTimeout    time.Duration `mapstructure:"upload_timeout"` // multipart upload timeout
	RecommendedLimit int           `mapstructure:"recommended_limit"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	PageSize     int    `mapstructure:"page_size"`
	DefaultRoute string `mapstructure:"default_route"`
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // empty = memory-only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			// Empty until the setup flow records a backend; IsConfigured
			// gates the first launch on it.
			BaseURL:          "",
			Timeout:          10 * time.Second,
			UploadTimeout:    30 * time.Second,
			RecommendedLimit: 6,
		},
		UI: UIConfig{
			PageSize:     10,
			DefaultRoute: "/",
		},
		Storage: StorageConfig{
			Dir: defaultStoragePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinegrid", "cinegrid.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinegrid", "cinegrid.log")
	}
}

// defaultStoragePath returns the default local storage directory
func defaultStoragePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "cinegrid")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinegrid")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinegrid")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinegrid")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("CINEGRID")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.base_url", cfg.Server.BaseURL)
	viper.Set("server.timeout", cfg.Server.Timeout)
	viper.Set("server.upload_timeout", cfg.Server.UploadTimeout)
	viper.Set("server.recommended_limit", cfg.Server.RecommendedLimit)

	viper.Set("ui.page_size", cfg.UI.PageSize)
	viper.Set("ui.default_route", cfg.UI.DefaultRoute)

	viper.Set("storage.dir", cfg.Storage.Dir)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend base URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.BaseURL != ""
}
