package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a
// local .env file first if one exists. A missing .env file is not an error.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("FLEETTRACK_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("FLEETTRACK_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("FLEETTRACK_KDF_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.KDFIterations = n
		}
	}
}
