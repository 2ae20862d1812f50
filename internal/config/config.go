package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultPort = 3000

// Library persistence backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port           string `env:"PORT"`
	DataDir        string `env:"SCENECAST_DATA_DIR"         envDefault:"./data"`
	PublicDir      string `env:"SCENECAST_PUBLIC_DIR"       envDefault:"./public"`
	UploadsDir     string `env:"SCENECAST_UPLOADS_DIR"      envDefault:"./public/uploads"`
	LibraryBackend string `env:"SCENECAST_LIBRARY_BACKEND"  envDefault:"file"`
	ValkeyAddr     string `env:"SCENECAST_VALKEY_ADDR"      envDefault:"127.0.0.1:6379"`
	ValkeyKey      string `env:"SCENECAST_VALKEY_KEY"       envDefault:"scenecast:library"`
	PostgresDSN    string `env:"SCENECAST_POSTGRES_DSN"`
	PostgresKey    string `env:"SCENECAST_POSTGRES_KEY"     envDefault:"default"`
	AllowedOrigin  string `env:"SCENECAST_ALLOWED_ORIGIN"   envDefault:"*"`
	LogMode        string `env:"SCENECAST_LOG_MODE"         envDefault:"dev"`
	MaxPortRetries int    `env:"SCENECAST_MAX_PORT_RETRIES" envDefault:"10"`
}

// Load reads an optional .env file from each of the given paths (the working
// directory when none are given) and parses the environment into a Config.
func Load(dotenvPaths ...string) (Config, error) {
	if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.LibraryBackend = strings.ToLower(strings.TrimSpace(cfg.LibraryBackend))
	switch cfg.LibraryBackend {
	case BackendFile, BackendMemory, BackendValkey:
	case BackendPostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, errors.New("SCENECAST_POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown library backend %q", cfg.LibraryBackend)
	}
	if cfg.MaxPortRetries < 0 {
		cfg.MaxPortRetries = 0
	}
	return cfg, nil
}

// ErrInvalidPort is returned by ParsePort for values outside 1..65535.
var ErrInvalidPort = errors.New("port must be an integer between 1 and 65535")

// ParsePort parses a TCP port. An empty value yields (0, nil) meaning "not set".
func ParsePort(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	port, err := strconv.Atoi(value)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidPort)
	}
	return port, nil
}
