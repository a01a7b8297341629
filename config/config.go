package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Session       SessionConfig
	PasswordReset PasswordResetConfig
	Mail          MailConfig
	Redis         RedisConfig
	CORS          CORSConfig
	S3            S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
	PublicURL   string // overrides the request host when building absolute links
	// hosts absolute links may be built from when PublicURL is empty
	AllowedHosts []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret       string
	Expiry       time.Duration
	CookieName   string
	CookieSecure bool
}

type PasswordResetConfig struct {
	Secret         string
	Timeout        time.Duration
	FromEmail      string
	AuditRetention time.Duration
	PurgeSchedule  string
}

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	UseTLS   bool
}

// Enabled reports whether an SMTP relay is configured. Without one mail goes to the log.
func (c *MailConfig) Enabled() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	secret := getEnv("SECRET_KEY", "insecure-dev-secret-key")

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			GinMode:      getEnv("GIN_MODE", "debug"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			PublicURL:    strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),
			AllowedHosts: parseSlice(getEnv("ALLOWED_HOSTS", "localhost,127.0.0.1")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "learnhub"),
			Password: getEnv("DB_PASSWORD", "learnhub"),
			DBName:   getEnv("DB_NAME", "learnhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", secret),
			Expiry:       parseDuration(getEnv("SESSION_EXPIRY", "336h"), 336*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "sessionid"),
			CookieSecure: parseBool(getEnv("SESSION_COOKIE_SECURE", "false")),
		},
		PasswordReset: PasswordResetConfig{
			Secret:         getEnv("PASSWORD_RESET_SECRET", secret),
			Timeout:        parseDuration(getEnv("PASSWORD_RESET_TIMEOUT", "72h"), 72*time.Hour),
			FromEmail:      getEnv("PASSWORD_RESET_FROM", "from@example.com"),
			AuditRetention: parseDuration(getEnv("PASSWORD_RESET_AUDIT_RETENTION", "720h"), 720*time.Hour),
			PurgeSchedule:  getEnv("PASSWORD_RESET_PURGE_SCHEDULE", "0 3 * * *"),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "from@example.com"),
			UseTLS:   parseBool(getEnv("SMTP_USE_TLS", "false")),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "eu-west-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
	}

	if config.Server.Environment == "production" && secret == "insecure-dev-secret-key" {
		return nil, fmt.Errorf("SECRET_KEY must be set in production")
	}
	if config.Server.Environment == "production" && config.Server.PublicURL == "" {
		return nil, fmt.Errorf("PUBLIC_URL must be set in production")
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
