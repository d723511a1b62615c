package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseName string
	SQLitePath   string
	// Region hints for the two phone parsing contexts. The geocoder region
	// and the carrier region are independent on purpose: carrier metadata is
	// keyed by numbering-plan prefix and the two resolutions may disagree.
	GeocoderRegion string
	CarrierRegion  string
	IPProviderURL  string
	CallerIPURL    string
	HTTPTimeout    time.Duration
	ListenAddr     string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	databaseName := getEnv("DATABASE_NAME", "lookup_tracker")

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
	}

	timeoutSeconds := 10
	if raw := os.Getenv("HTTP_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %q", raw)
		}
		timeoutSeconds = parsed
	}

	config := &Config{
		DatabaseName:   databaseName,
		SQLitePath:     sqlitePath,
		GeocoderRegion: getEnv("GEOCODER_REGION", "CH"),
		CarrierRegion:  getEnv("CARRIER_REGION", "RO"),
		IPProviderURL:  getEnv("IP_PROVIDER_URL", "https://ipinfo.io"),
		CallerIPURL:    getEnv("CALLER_IP_URL", "https://api.ipify.org?format=json"),
		HTTPTimeout:    time.Duration(timeoutSeconds) * time.Second,
		ListenAddr:     getEnv("LISTEN_ADDR", ":3008"),
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
