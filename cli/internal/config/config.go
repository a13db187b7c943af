// Package config loads CLI configuration from config files, .env files
// and the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem the CLI reads and writes through. Tests swap
// in an in-memory filesystem.
var AppFs = afero.NewOsFs()

// Config holds the resolved CLI configuration.
type Config struct {
	// DatabaseURL is the connection URL, from DATABASE_URL or the
	// database_url config key.
	DatabaseURL string
	// Format is the default export format for query output.
	Format string
}

// Load resolves configuration from, in increasing priority: a
// .levyt.yaml config file (cwd, home, ~/.config/levyt), LEVYT_-prefixed
// environment variables, a .env / .env.local file, and DATABASE_URL.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".levyt")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "levyt"))

	viper.SetEnvPrefix("LEVYT")
	viper.AutomaticEnv()

	viper.SetDefault("format", "")

	// Missing config files are fine.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = viper.GetString("database_url")
	}

	return &Config{
		DatabaseURL: url,
		Format:      viper.GetString("format"),
	}, nil
}
