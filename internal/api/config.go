package api

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings sourced from the environment. Flags
// in cmd/almanac-server override individual fields after parsing.
type Config struct {
	Addr           string `env:"ALMANAC_API_ADDR" envDefault:":8080"`
	MetricsAddr    string `env:"ALMANAC_METRICS_ADDR" envDefault:":9090"`
	StorePath      string `env:"ALMANAC_STORE_PATH"`
	EphemerisTable string `env:"ALMANAC_EPHEMERIS_TABLE"`
	GeocodeBaseURL string `env:"ALMANAC_GEOCODE_BASE_URL"`
	GinMode        string `env:"ALMANAC_GIN_MODE" envDefault:"release"`
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
