// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/pkordes/grand-plaza/internal/receipt"
)

// Config holds all configuration values for the widget server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Set CORS_ORIGINS to a comma-separated
	// list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// DatabaseURL is the Postgres connection string of the live-sync store.
	// Optional: without it bookings are kept in the local store only.
	DatabaseURL string `env:"DATABASE_URL"`

	// LocalStorePath is the SQLite file holding bookings and accounts.
	LocalStorePath string `env:"LOCAL_STORE_PATH" envDefault:"hotel.db"`

	// BcryptCost is the work factor for stored password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// MaxBodyBytes caps the size of request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// RemoteReadyInterval is how often the live-sync store is pinged until it
	// first answers.
	RemoteReadyInterval time.Duration `env:"REMOTE_READY_INTERVAL" envDefault:"2s"`

	// Hotel is printed on every receipt.
	Hotel Hotel
}

// Hotel is the receipt letterhead.
type Hotel struct {
	Name    string `env:"HOTEL_NAME" envDefault:"HOTEL GRAND PLAZA"`
	Address string `env:"HOTEL_ADDRESS" envDefault:"Hotel Grand Plaza, Ahmedabad"`
	Phone   string `env:"HOTEL_PHONE" envDefault:"+91 98765 43210"`
	Email   string `env:"HOTEL_EMAIL" envDefault:"hotelgrandplaza@gmail.com"`
}

// Receipt converts the letterhead into the exporter's form.
func (h Hotel) Receipt() receipt.HotelInfo {
	return receipt.HotelInfo{Name: h.Name, Address: h.Address, Phone: h.Phone, Email: h.Email}
}

// Level returns LogLevel as a slog.Level. Load has already validated it.
func (c Config) Level() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

// Load reads a .env file from the working directory, if there is one, and
// then the environment. Variables already set in the environment win over
// the file.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit .env paths. Missing files are skipped.
func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.CORSOrigins = splitCSV(strings.Join(cfg.CORSOrigins, ","))

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("config: invalid LOG_LEVEL %q: want debug, info, warn or error", cfg.LogLevel)
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.RemoteReadyInterval <= 0 {
		return Config{}, fmt.Errorf("config: REMOTE_READY_INTERVAL must be positive, got %s", cfg.RemoteReadyInterval)
	}
	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
