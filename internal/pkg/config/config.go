package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type UpstreamConfig struct {
	BaseURL         string
	ImageBaseURL    string
	Timeout         time.Duration
	SessionCookie   string
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

type MapConfig struct {
	TileURL     string
	Attribution string
	CenterLat   float64
	CenterLng   float64
	Zoom        int
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	PprofAddr    string
	OTELEndpoint string
}

type Config struct {
	Upstream      UpstreamConfig
	Map           MapConfig
	Observability ObservabilityConfig
	ServerPort    string
	PageSize      int
	JWTSecret     string
	SessionSecret string
	StateTTL      time.Duration
	LogLevel      string
}

func Load() (*Config, error) {
	cfg := &Config{
		Upstream: UpstreamConfig{
			BaseURL:         getEnvOrDefault("API_BASE_URL", "http://localhost:5000"),
			ImageBaseURL:    getEnvOrDefault("IMAGE_BASE_URL", "/static/"),
			Timeout:         getDurationOrDefault("API_TIMEOUT", 10*time.Second),
			SessionCookie:   getEnvOrDefault("UPSTREAM_SESSION_COOKIE", "session"),
			BreakerFailures: uint32(getIntOrDefault("BREAKER_FAILURES", 5)),
			BreakerTimeout:  getDurationOrDefault("BREAKER_TIMEOUT", 30*time.Second),
		},
		Map: MapConfig{
			TileURL:     getEnvOrDefault("MAP_TILE_URL", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"),
			Attribution: getEnvOrDefault("MAP_ATTRIBUTION", "© OpenStreetMap contributors"),
			CenterLat:   9.712,
			CenterLng:   -75.127,
			Zoom:        13,
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("SERVICE_NAME", "negocios-templui"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
			OTELEndpoint: getEnvOrDefault("OTEL_ENDPOINT", "otel-collector:4318"),
		},
		ServerPort:    getEnvOrDefault("SERVER_PORT", "8091"),
		PageSize:      getIntOrDefault("PAGE_SIZE", 12),
		JWTSecret:     getEnvOrDefault("JWT_SECRET_KEY", ""),
		SessionSecret: getEnvOrDefault("SESSION_SECRET", ""),
		StateTTL:      getDurationOrDefault("STATE_TTL", 30*time.Minute),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if _, err := url.ParseRequestURI(cfg.Upstream.BaseURL); err != nil {
		return nil, fmt.Errorf("API_BASE_URL is not a valid URL: %w", err)
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is required")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.JWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
