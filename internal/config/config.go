package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Storage — DataPath is the sqlite file holding every persisted record.
	DataPath string `mapstructure:"DATA_PATH"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// Exports
	ExportDir     string `mapstructure:"EXPORT_DIR"`
	ExportWorkers int    `mapstructure:"EXPORT_WORKERS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development. Data lives under the user's home
	// directory so running from any cwd hits the same store.
	home, _ := os.UserHomeDir()
	viper.SetDefault("PORT", 8600)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_PATH", filepath.Join(home, ".stockbook", "stockbook.db"))
	viper.SetDefault("JWT_SECRET", "dev-only-secret-change-me")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("EXPORT_DIR", filepath.Join(home, ".stockbook", "exports"))
	viper.SetDefault("EXPORT_WORKERS", 2)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
