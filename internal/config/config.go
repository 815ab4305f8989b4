// Package config loads the application configuration.
//
// The YAML file path is taken from, in priority order:
//  1. the CONFIG_PATH environment variable
//  2. the --config command-line flag
//
// Before the file is read, a .env file in the working directory (if any) is
// loaded into the process environment, so every env:"..." override below can
// also be set from there during local development.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by cmd/students-api.
const (
	DriverSQLite     = "sqlite"      // hand-written SQL over mattn/go-sqlite3
	DriverGormSQLite = "gorm-sqlite" // gorm with the sqlite dialector
	DriverPostgres   = "postgres"    // gorm with the postgres dialector
)

// Config is the root configuration structure. Each field maps to a YAML key
// and can be overridden by the environment variable named in its env tag.
type Config struct {
	// Env selects log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	StorageDriver string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"sqlite"`

	// StoragePath is the SQLite database file. Used by both sqlite drivers.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`

	Postgres Postgres `yaml:"postgres"`

	HTTPServer `yaml:"http_server"`
}

// Postgres holds the connection settings for the postgres driver.
type Postgres struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

// DSN renders the settings in the key=value form the pgx driver accepts.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// HTTPServer holds settings for the listener and the CORS middleware.
type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`

	// AllowedOrigins feeds the CORS handler. Empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_SERVER_ALLOWED_ORIGINS" env-separator:","`
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields cleanenv cannot express as tags: the ones whose
// requirement depends on the selected storage driver.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverGormSQLite:
		if c.StoragePath == "" {
			return fmt.Errorf("storage_path is required for driver %q", c.StorageDriver)
		}
	case DriverPostgres:
		if c.Postgres.DBName == "" || c.Postgres.User == "" {
			return fmt.Errorf("postgres.dbname and postgres.user are required for driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage_driver %q", c.StorageDriver)
	}

	return nil
}

// MustLoad resolves the config path, loads the file and terminates the
// process if anything is wrong. If it returns, the config is valid.
func MustLoad() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}

	return cfg
}
