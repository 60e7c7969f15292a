package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	TimeZone TimeZoneConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns URL when set, otherwise a keyword/value string built from the discrete fields.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// MigrationURL returns a postgres:// URL suitable for golang-migrate.
func (c DatabaseConfig) MigrationURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type TimeZoneConfig struct {
	APIURL         string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	CacheTTL       time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, err := getEnvInt("SERVER_READ_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	tzTimeout, err := getEnvInt("TIMEZONE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	tzAttempts, err := getEnvInt("TIMEZONE_MAX_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}
	if tzAttempts < 1 {
		return nil, fmt.Errorf("TIMEZONE_MAX_ATTEMPTS must be at least 1, got %d", tzAttempts)
	}
	tzBackoff, err := getEnvInt("TIMEZONE_INITIAL_BACKOFF_MS", 500)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvInt("TIMEZONE_CACHE_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "transaction_management"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		TimeZone: TimeZoneConfig{
			APIURL:         getEnv("TIMEZONE_API_URL", "https://timeapi.io/api/Time/current/coordinate"),
			Timeout:        time.Duration(tzTimeout) * time.Second,
			MaxAttempts:    tzAttempts,
			InitialBackoff: time.Duration(tzBackoff) * time.Millisecond,
			CacheTTL:       time.Duration(cacheTTL) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
