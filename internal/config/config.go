package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Chart    ChartConfig
	Cache    CacheConfig
	CORS     CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// ChartConfig is the default donut geometry used when a request carries none.
type ChartConfig struct {
	CX          float64
	CY          float64
	Radius      float64
	LabelOffset float64
	MinDist     float64
	TopBound    float64
	BottomBound float64
}

type CacheConfig struct {
	TTL           time.Duration
	PruneInterval time.Duration
	MaxEntries    int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: maxConns,
		MinConns: minConns,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Chart geometry
	chart := ChartConfig{}
	floats := []struct {
		key      string
		fallback float64
		dst      *float64
	}{
		{"CHART_CX", 150, &chart.CX},
		{"CHART_CY", 150, &chart.CY},
		{"CHART_RADIUS", 80, &chart.Radius},
		{"CHART_LABEL_OFFSET", 20, &chart.LabelOffset},
		{"CHART_MIN_DIST", 18, &chart.MinDist},
		{"CHART_TOP_BOUND", 20, &chart.TopBound},
		{"CHART_BOTTOM_BOUND", 280, &chart.BottomBound},
	}
	for _, f := range floats {
		if *f.dst, err = getEnvFloat(f.key, f.fallback); err != nil {
			return nil, err
		}
	}
	config.Chart = chart

	// Summary cache
	cacheTTL, err := getEnvDuration("SUMMARY_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	pruneInterval, err := getEnvDuration("SUMMARY_CACHE_PRUNE_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cacheMaxEntries, err := getEnvInt("SUMMARY_CACHE_MAX_ENTRIES", 10000)
	if err != nil {
		return nil, err
	}
	config.Cache = CacheConfig{
		TTL:           cacheTTL,
		PruneInterval: pruneInterval,
		MaxEntries:    cacheMaxEntries,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("SUMMARY_CACHE_MAX_ENTRIES must not be negative")
	}
	if c.Chart.Radius <= 0 {
		return fmt.Errorf("CHART_RADIUS must be positive")
	}
	if c.Chart.LabelOffset < 0 || c.Chart.MinDist < 0 {
		return fmt.Errorf("CHART_LABEL_OFFSET and CHART_MIN_DIST must not be negative")
	}
	if c.Chart.BottomBound < c.Chart.TopBound {
		return fmt.Errorf("CHART_BOTTOM_BOUND must not be above CHART_TOP_BOUND")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
