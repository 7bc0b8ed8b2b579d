package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hadirku/hadirku-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Geocoder GeocoderConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port       int
	Env        string
	Timezone   string
	LateCutoff string // "HH:MM:SS" wall clock; checking in later is LATE
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  string
	RefreshExpiration string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type GeocoderConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:       appPort,
		Env:        getEnv("APP_ENV", "development"),
		Timezone:   getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		LateCutoff: getEnv("LATE_CUTOFF", "07:00:00"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:     getEnv("DB_DRIVER", "sqlite"),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "hadirku"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "hadirku.db"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	geocoderTimeout, err := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_TIMEOUT: %w", err)
	}

	config.Geocoder = GeocoderConfig{
		BaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		Timeout: geocoderTimeout,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if _, ok := validator.IsValidTimeOfDay(c.App.LateCutoff); !ok {
		return fmt.Errorf("LATE_CUTOFF must be a HH:MM:SS clock string, got %q", c.App.LateCutoff)
	}
	return nil
}

// DatabaseURL builds the postgres DSN.
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
