package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GeminiConfig holds settings for the generative-AI service: credentials,
// the model preference order, and the retry policy knobs.
type GeminiConfig struct {
	APIKey           string
	PrimaryModel     string
	FallbackModel    string
	MaxAttempts      int
	RetryBaseDelayMs int
	Temperature      float64
	MaxOutputTokens  int
}

// AuthConfig holds JWT signing settings.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// UploadConfig holds file intake settings.
type UploadConfig struct {
	TempDir  string
	MaxChars int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables at process start and passed
// by reference into the components that need it; nothing reads the
// environment ad hoc after startup. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Env      string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Gemini   GeminiConfig
	Auth     AuthConfig
	Upload   UploadConfig
}

// IsDevelopment reports whether the app runs in a development-like mode.
// Raw provider error detail is only surfaced to clients in this mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Env:     getEnv("APP_ENV", "production"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Gemini: GeminiConfig{
			APIKey:           getEnv("GEMINI_API_KEY", ""),
			PrimaryModel:     getEnv("GEMINI_PRIMARY_MODEL", "gemini-2.0-flash"),
			FallbackModel:    getEnv("GEMINI_FALLBACK_MODEL", "gemini-2.5-flash"),
			MaxAttempts:      getEnvInt("GEMINI_MAX_ATTEMPTS", 3),
			RetryBaseDelayMs: getEnvInt("GEMINI_RETRY_BASE_DELAY_MS", 1000),
			Temperature:      getEnvFloat("GEMINI_TEMPERATURE", 0.3),
			MaxOutputTokens:  getEnvInt("GEMINI_MAX_OUTPUT_TOKENS", 8192),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvInt("JWT_TOKEN_TTL_HOURS", 24),
		},
		Upload: UploadConfig{
			TempDir:  getEnv("UPLOAD_TEMP_DIR", "uploads"),
			MaxChars: getEnvInt("UPLOAD_MAX_CHARS", 10000),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
