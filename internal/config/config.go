package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the gateway.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Geocoder GeocoderConfig
	Map      MapConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendConfig points at the parking backend API.
type BackendConfig struct {
	BaseURL string
}

// GeocoderConfig points at the Nominatim-compatible geocoding server.
type GeocoderConfig struct {
	Endpoint string
}

// MapConfig holds the fallback city center used when no point is
// picked yet.
type MapConfig struct {
	FallbackLat float64
	FallbackLng float64
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3000"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:8000/api/v1"),
		},
		Geocoder: GeocoderConfig{
			Endpoint: getEnv("GEOCODER_ENDPOINT", "https://nominatim.openstreetmap.org"),
		},
		Map: MapConfig{
			// Dhaka city center, the network's home market.
			FallbackLat: getFloatEnv("MAP_FALLBACK_LAT", 23.8103),
			FallbackLng: getFloatEnv("MAP_FALLBACK_LNG", 90.4125),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "parkflow-gateway"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
